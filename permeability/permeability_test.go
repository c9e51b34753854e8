package permeability

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/StefanMathis/stem-material/types"
)

// M270-50A 电工钢的磁化曲线参考数据
var referenceFieldStrength = []float64{
	0, 11.57, 22.11, 31.71, 40.47, 48.50, 55.29, 64.02, 75.66, 89.24, 107.67,
	134.83, 179.45, 276.45, 582.98, 1583.11, 3578.65, 6665.91, 11303.32,
	18871.00, 29765.16, 45905.16, 69372.42, 102918.79, 150142.01, 215692.99,
	219224.15,
}

var referenceFluxDensity = []float64{
	0, 0.0970, 0.1940, 0.2910, 0.3880, 0.4851, 0.5821, 0.6791, 0.7761, 0.8731,
	0.9701, 1.0672, 1.1642, 1.2614, 1.3588, 1.4571, 1.5566, 1.6576, 1.7606,
	1.8674, 1.9674, 2.0674, 2.1674, 2.2674, 2.3674, 2.4674, 2.4720,
}

func referenceModel(t *testing.T, ironFillFactor float64) *FerromagneticPermeability {
	t.Helper()
	curve, err := NewMagnetizationCurve(referenceFieldStrength, referenceFluxDensity, ironFillFactor)
	if err != nil {
		t.Fatalf("构建磁化曲线失败: %v", err)
	}
	model, err := FromMagnetization(curve)
	if err != nil {
		t.Fatalf("构建磁导率模型失败: %v", err)
	}
	return model
}

func checkRel(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol*math.Abs(want) {
		t.Errorf("%s: 期望 %v, 实际 %v", name, want, got)
	}
}

// TestSampleBHCurve 测试自适应重采样的支撑点数量与取值。
func TestSampleBHCurve(t *testing.T) {
	h, b, err := SampleBHCurve(referenceFieldStrength, referenceFluxDensity, 0.02)
	if err != nil {
		t.Fatalf("重采样失败: %v", err)
	}
	if len(h) != 300 || len(b) != 300 {
		t.Fatalf("支撑点数量错误: 期望 300, 实际 %d / %d", len(h), len(b))
	}

	hExpected := map[int]float64{0: 0, 1: 10, 2: 20, 50: 580, 150: 7040, 299: 217110}
	for idx, want := range hExpected {
		if math.Abs(h[idx]-want) > 1e-3 {
			t.Errorf("h[%d]: 期望 %v, 实际 %v", idx, want, h[idx])
		}
	}
	bExpected := map[int]float64{0: 0, 1: 0.08142, 2: 0.17399, 50: 1.35845, 150: 1.66712, 299: 2.46926}
	for idx, want := range bExpected {
		if math.Abs(b[idx]-want) > 1e-3 {
			t.Errorf("b[%d]: 期望 %v, 实际 %v", idx, want, b[idx])
		}
	}
}

// TestPermeabilityReference 测试参考数据集 (填充系数 1.0) 的磁导率取值。
func TestPermeabilityReference(t *testing.T) {
	model := referenceModel(t, 1.0)

	cases := []struct {
		fluxDensity float64
		want        float64
	}{
		{0.5, 8469.282},
		{0.9, 7647.7276},
		{1.0, 6924.8432},
		{1.5, 503.64},
		{2.5, 9.048},
		{10.0, 8.4290},
		{90.0, 1.8254},
		{100.0, 1.0},
	}
	for _, c := range cases {
		got := model.Get(types.NewQuantity(c.fluxDensity, types.FluxDensity))
		checkRel(t, "µr(B)", got, c.want, 1e-4)
	}
}

// TestPermeabilityFillFactor 测试填充系数 0.95 的取值，并验证
// 预先修正过的曲线 (填充系数 1.0) 给出一致的结果。
func TestPermeabilityFillFactor(t *testing.T) {
	factor := 0.95
	model := referenceModel(t, factor)

	cases := []struct {
		fluxDensity float64
		want        float64
	}{
		{0.5, 8045.868},
		{0.9, 6974.4999},
		{1.0, 6129.6062},
		{10.0, 8.0496},
		{90.0, 1.7833},
	}
	for _, c := range cases {
		got := model.Get(types.NewQuantity(c.fluxDensity, types.FluxDensity))
		checkRel(t, "µr(B)", got, c.want, 1e-4)
	}

	// 手动修正原始数据后以填充系数 1.0 构建，结果应当一致
	corrected := make([]float64, len(referenceFluxDensity))
	for i, b := range referenceFluxDensity {
		corrected[i] = b*factor + (1.0-factor)*referenceFieldStrength[i]*types.VacuumPermeability
	}
	curve, err := NewMagnetizationCurve(referenceFieldStrength, corrected, 1.0)
	if err != nil {
		t.Fatalf("构建磁化曲线失败: %v", err)
	}
	precorrected, err := FromMagnetization(curve)
	if err != nil {
		t.Fatalf("构建磁导率模型失败: %v", err)
	}
	for _, b := range []float64{0.5, 1.0, 1.5, 10.0} {
		q := types.NewQuantity(b, types.FluxDensity)
		checkRel(t, "预修正等价性", precorrected.Get(q), model.Get(q), 1e-2)
	}
}

// TestPermeabilityMonotonicDecrease 在密集网格上验证两条样条
// 随 B / H 增大严格单调不增。
func TestPermeabilityMonotonicDecrease(t *testing.T) {
	model := referenceModel(t, 1.0)

	prev := math.Inf(1)
	for b := 0.5; b <= 120.0; b += 0.1 {
		got := model.Get(types.NewQuantity(b, types.FluxDensity))
		if got > prev {
			t.Fatalf("µr(B) 在 B=%v 处不单调: %v > %v", b, got, prev)
		}
		prev = got
	}

	prev = math.Inf(1)
	for h := 100.0; h <= 1e6; h += 500.0 {
		got := model.Get(types.NewQuantity(h, types.FieldStrength))
		if got > prev {
			t.Fatalf("µr(H) 在 H=%v 处不单调: %v > %v", h, got, prev)
		}
		prev = got
	}
}

// TestPermeabilitySymmetry 磁导率关于零点对称。
func TestPermeabilitySymmetry(t *testing.T) {
	model := referenceModel(t, 1.0)
	for _, v := range []float64{0.3, 1.0, 2.5, 50.0} {
		pos := model.Get(types.NewQuantity(v, types.FluxDensity))
		neg := model.Get(types.NewQuantity(-v, types.FluxDensity))
		if pos != neg {
			t.Errorf("µr(B) 不对称: µr(%v)=%v, µr(%v)=%v", v, pos, -v, neg)
		}
		pos = model.Get(types.NewQuantity(1000*v, types.FieldStrength))
		neg = model.Get(types.NewQuantity(-1000*v, types.FieldStrength))
		if pos != neg {
			t.Errorf("µr(H) 不对称: µr(%v)=%v, µr(%v)=%v", 1000*v, pos, -1000*v, neg)
		}
	}
}

// TestPermeabilityFloor 磁导率的物理下限是 1。
func TestPermeabilityFloor(t *testing.T) {
	model := referenceModel(t, 1.0)
	for _, v := range []float64{100.0, 200.0, 1e4} {
		if got := model.Get(types.NewQuantity(v, types.FluxDensity)); got != 1.0 {
			t.Errorf("µr(B=%v): 期望钳位到 1.0, 实际 %v", v, got)
		}
	}
	if got := model.Get(types.NewQuantity(1e9, types.FieldStrength)); got != 1.0 {
		t.Errorf("µr(H=1e9): 期望钳位到 1.0, 实际 %v", got)
	}
}

// TestPermeabilityCall 测试 QuantityFunc 接口的条件查找逻辑。
func TestPermeabilityCall(t *testing.T) {
	model := referenceModel(t, 1.0)

	// 磁通密度与磁场强度同时存在时磁通密度优先
	got := model.Call([]types.Quantity{
		types.NewQuantity(1e6, types.FieldStrength),
		types.NewQuantity(0.5, types.FluxDensity),
	})
	if got.Unit != types.Dimensionless {
		t.Errorf("返回值应当无量纲, 实际单位 %v", got.Unit)
	}
	checkRel(t, "Call (B 优先)", got.Value, 8469.282, 1e-4)

	// 只有磁场强度时使用 µr(H) 样条
	got = model.Call([]types.Quantity{types.NewQuantity(50000, types.FieldStrength)})
	want := model.Get(types.NewQuantity(50000, types.FieldStrength))
	if got.Value != want {
		t.Errorf("Call (仅 H): 期望 %v, 实际 %v", want, got.Value)
	}

	// 二者皆无时返回 0 T 处的磁导率
	got = model.Call([]types.Quantity{types.NewQuantity(20, types.Temperature)})
	want = model.Get(types.NewQuantity(0, types.FluxDensity))
	if got.Value != want {
		t.Errorf("Call (无条件): 期望 %v, 实际 %v", want, got.Value)
	}
}

// TestPermeabilityJSONForms 测试三种序列化形式的反序列化。
func TestPermeabilityJSONForms(t *testing.T) {
	model := referenceModel(t, 1.0)
	samples := []float64{0.1, 0.5, 1.5, 10.0, 150.0}

	// 原生形式往返
	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var native FerromagneticPermeability
	if err := json.Unmarshal(data, &native); err != nil {
		t.Fatalf("原生形式反序列化失败: %v", err)
	}
	for _, b := range samples {
		q := types.NewQuantity(b, types.FluxDensity)
		if math.Abs(native.Get(q)-model.Get(q)) > 1e-3 {
			t.Errorf("原生形式往返不一致: B=%v", b)
		}
	}

	// 磁化曲线形式: 反序列化时重新运行构建流程
	curveData, err := json.Marshal(&MagnetizationCurve{
		FieldStrength:  referenceFieldStrength,
		FluxDensity:    referenceFluxDensity,
		IronFillFactor: 1.0,
	})
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var fromCurve FerromagneticPermeability
	if err := json.Unmarshal(curveData, &fromCurve); err != nil {
		t.Fatalf("磁化曲线形式反序列化失败: %v", err)
	}
	checkRel(t, "磁化曲线形式", fromCurve.Get(types.NewQuantity(0.5, types.FluxDensity)), 8469.282, 1e-4)

	// 极化曲线形式: J = B - µ0 * H
	polarization := make([]float64, len(referenceFluxDensity))
	for i, b := range referenceFluxDensity {
		polarization[i] = b - referenceFieldStrength[i]*types.VacuumPermeability
	}
	polarizationData, err := json.Marshal(&PolarizationCurve{
		FieldStrength:  referenceFieldStrength,
		Polarization:   polarization,
		IronFillFactor: 1.0,
	})
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var fromPolarization FerromagneticPermeability
	if err := json.Unmarshal(polarizationData, &fromPolarization); err != nil {
		t.Fatalf("极化曲线形式反序列化失败: %v", err)
	}
	checkRel(t, "极化曲线形式", fromPolarization.Get(types.NewQuantity(0.5, types.FluxDensity)), 8469.282, 1e-4)
}

// TestPermeabilityInvalidInput 测试非法输入的错误返回。
func TestPermeabilityInvalidInput(t *testing.T) {
	if _, err := NewMagnetizationCurve([]float64{0, 100}, []float64{0, 0.5}, 1.1); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("填充系数越界应当返回 ErrInvalidInputData, 实际 %v", err)
	}
	if _, err := NewMagnetizationCurve([]float64{0, 100}, []float64{0.5}, 0.95); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("数据点数量不一致应当返回 ErrInvalidInputData, 实际 %v", err)
	}
	if _, err := NewPolarizationCurve([]float64{0, 100}, []float64{0.5}, 0.95); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("数据点数量不一致应当返回 ErrInvalidInputData, 实际 %v", err)
	}
	if _, _, err := SampleBHCurve(nil, nil, 0.02); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("空数据应当返回 ErrInvalidInputData, 实际 %v", err)
	}
}

// TestPermeabilityFlatTopData 测试磁导率曲线顶部平坦的病态数据。
func TestPermeabilityFlatTopData(t *testing.T) {
	// 磁导率在一段区间内为常数 5000，之后逐渐饱和。磁导率的下降
	// 速度不超过磁场强度的增长速度，磁通密度保持单调上升。
	fieldStrength := []float64{0, 100, 200, 300, 1000, 5000, 20000}
	permeability := []float64{5000, 5000, 5000, 5000, 3000, 800, 220}
	fluxDensity := make([]float64, len(fieldStrength))
	for i, h := range fieldStrength {
		fluxDensity[i] = types.VacuumPermeability * permeability[i] * h
	}

	curve, err := NewMagnetizationCurve(fieldStrength, fluxDensity, 1.0)
	if err != nil {
		t.Fatalf("构建磁化曲线失败: %v", err)
	}
	model, err := FromMagnetization(curve)
	if err != nil {
		t.Fatalf("平顶数据应当可以构建: %v", err)
	}
	prev := math.Inf(1)
	for h := 100.0; h <= 30000; h += 50.0 {
		got := model.Get(types.NewQuantity(h, types.FieldStrength))
		if got > prev {
			t.Fatalf("平顶数据构建的曲线在 H=%v 处不单调: %v > %v", h, got, prev)
		}
		prev = got
	}

	// 完全线性的数据 (磁导率处处相同) 重采样后只剩一个有效支撑点，
	// 无法构建样条
	linearH := []float64{0, 100, 200, 300}
	linearB := make([]float64, len(linearH))
	for i, h := range linearH {
		linearB[i] = types.VacuumPermeability * 5000 * h
	}
	linearCurve, err := NewMagnetizationCurve(linearH, linearB, 1.0)
	if err != nil {
		t.Fatalf("构建磁化曲线失败: %v", err)
	}
	if _, err := FromMagnetization(linearCurve); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("常数磁导率数据应当返回 ErrInvalidInputData, 实际 %v", err)
	}

	// 磁通密度不随磁场强度单调上升的非物理数据无法构建 µr(B) 样条
	badH := []float64{0, 100, 5000, 20000}
	badPermeability := []float64{5000, 5000, 800, 100}
	badB := make([]float64, len(badH))
	for i, h := range badH {
		badB[i] = types.VacuumPermeability * badPermeability[i] * h
	}
	badCurve, err := NewMagnetizationCurve(badH, badB, 1.0)
	if err != nil {
		t.Fatalf("构建磁化曲线失败: %v", err)
	}
	if _, err := FromMagnetization(badCurve); !errors.Is(err, ErrInvalidInputData) {
		t.Errorf("磁通密度非单调的数据应当返回 ErrInvalidInputData, 实际 %v", err)
	}
}

// TestRelativePermeabilityVariants 测试相对磁导率变体类型。
func TestRelativePermeabilityVariants(t *testing.T) {
	constant := ConstPermeability(1.05)
	if got := constant.Get(nil); got != 1.05 {
		t.Errorf("常量变体取值错误: %v", got)
	}
	if constant.Model() != nil || constant.Function() != nil {
		t.Errorf("常量变体不应暴露模型或函数")
	}

	model := referenceModel(t, 1.0)
	wrapped := ModelPermeability(model)
	conditions := []types.Quantity{types.NewQuantity(0.5, types.FluxDensity)}
	checkRel(t, "模型变体", wrapped.Get(conditions), 8469.282, 1e-4)
	if wrapped.Model() == nil {
		t.Errorf("模型变体应暴露底层模型")
	}

	// 常量序列化为裸数字
	data, err := json.Marshal(constant)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if string(data) != "1.05" {
		t.Errorf("常量应序列化为裸数字, 实际 %s", data)
	}
	var back RelativePermeability
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if back.Get(nil) != 1.05 {
		t.Errorf("常量往返结果不一致: %v", back.Get(nil))
	}

	// 模型带标签序列化
	data, err = json.Marshal(wrapped)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var backModel RelativePermeability
	if err := json.Unmarshal(data, &backModel); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	checkRel(t, "模型往返", backModel.Get(conditions), 8469.282, 1e-4)

	// 函数变体无法序列化
	fn := FuncPermeability(model)
	if _, err := json.Marshal(fn); err == nil {
		t.Errorf("函数变体序列化应当失败")
	}
}
