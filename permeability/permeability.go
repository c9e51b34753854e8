package permeability

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/StefanMathis/stem-material/maths"
	"github.com/StefanMathis/stem-material/types"
)

// FerromagneticPermeability 面向数值计算优化的铁磁材料磁导率特性。
//
// 磁场强度 H 与磁通密度 B 通过 B = µ0 * µr * H 关联。对铁磁材料而言
// µr 本身是 B（从而也是 H）的函数，无法解析表达，只能在测量数据点
// 之间插值。本结构用两条 Akima 样条分别表示 µr(H) 和 µr(B)，并针对
// 迭代求解器做了如下修正：
//
//  1. 样条随 B / H 增大严格单调递减。在极低的 B / H 处这会引入少量
//     误差，但电机仿真的工作点饱和程度通常足够高，误差可以忽略
//     （商用有限元软件也会对用户给定的磁导率曲线做同样的修正）。
//  2. 数据手册通常没有极高 B / H 值的数据点，而迭代求解器起步阶段
//     可能出现极端值。为保证迭代稳定，样条向两侧外推并在求值时
//     钳位，绝不返回无意义的结果（例如负磁导率）。
type FerromagneticPermeability struct {
	FromFieldStrength *maths.AkimaSpline `json:"from_field_strength"` // µr(H) 样条
	FromFluxDensity   *maths.AkimaSpline `json:"from_flux_density"`   // µr(B) 样条
}

// FromMagnetization 由磁化曲线构建磁导率特性。
//
// 构建流程: 自适应重采样 -> 填充系数修正 -> 割线磁导率 ->
// 去除最大值左侧数据 -> 单调性修复 -> 高场外推。
// 输入数据非法时返回包装了 ErrInvalidInputData 的错误。
func FromMagnetization(rawCurve *MagnetizationCurve) (*FerromagneticPermeability, error) {
	if err := rawCurve.check(); err != nil {
		return nil, err
	}
	hSampled, bSampled, err := SampleBHCurve(rawCurve.FieldStrength, rawCurve.FluxDensity, types.SampleTolerance)
	if err != nil {
		return nil, err
	}

	// 计算各采样点的割线磁导率，H=0 处无定义故丢弃
	fieldStrength := make([]float64, 0, len(hSampled))
	induction := make([]float64, 0, len(hSampled))
	permeability := make([]float64, 0, len(hSampled))
	for i, hi := range hSampled {
		if hi == 0 {
			continue
		}

		// 填充系数修正: 绝缘层按 µr=1 的气隙折算
		bRed := bSampled[i]*rawCurve.IronFillFactor +
			(1.0-rawCurve.IronFillFactor)*hi*types.VacuumPermeability

		fieldStrength = append(fieldStrength, hi)
		induction = append(induction, bRed)
		permeability = append(permeability, bRed/(hi*types.VacuumPermeability))
	}
	if len(permeability) == 0 {
		return nil, fmt.Errorf("%w: 所有采样点的磁场强度均为零", ErrInvalidInputData)
	}

	// 定位磁导率最大值并去除其左侧的数据点。左侧的初始上升段
	// 破坏单调性，对求解器稳定性没有意义。
	idxMax := 0
	maxValue := math.Inf(-1)
	for idx, value := range permeability {
		if value > maxValue {
			maxValue = value
			idxMax = idx
		}
	}
	fieldStrength = fieldStrength[idxMax:]
	induction = induction[idxMax:]
	permeability = permeability[idxMax:]

	// 从尾部向前修复 µr(B) 的单调性: 某点磁导率低于其后继时，
	// 用其前方两点的斜率线性外推覆盖。末尾两点不在扫描范围内，
	// 先把最后一点钳位到其前驱，保证尾段不会向上翘。
	n := len(permeability)
	if n >= 2 && permeability[n-1] > permeability[n-2] {
		permeability[n-1] = permeability[n-2]
	}
	if n > 2 {
		for idx := n - 3; idx >= 0; idx-- {
			if permeability[idx] < permeability[idx+1] {
				m := (permeability[idx+1] - permeability[idx+2]) /
					(induction[idx+1] - induction[idx+2])
				permeability[idx] = permeability[idx+1] + m*(induction[idx+1]-induction[idx+2])
			}
		}
	}

	// 高场外推: 以最后一个支撑点和 B=100 T 处 µr=1（完全饱和假设）
	// 两点确定外推斜率，两种表示各自换算
	induction1 := induction[len(induction)-1]
	induction2 := 100.0
	permeability1 := permeability[len(permeability)-1]
	permeability2 := 1.0
	fieldStrength1 := induction1 / (types.VacuumPermeability * permeability1)
	fieldStrength2 := induction2 / (types.VacuumPermeability * permeability2)

	// µr(H) 样条: 左侧从最大值处水平延伸
	mr := (permeability2 - permeability1) / (fieldStrength2 - fieldStrength1)
	fromFieldStrength, err := maths.NewAkimaSpline(fieldStrength, permeability,
		[]float64{0}, []float64{mr})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInputData, err)
	}

	// µr(B) 样条
	mr = (permeability2 - permeability1) / (induction2 - induction1)
	fromFluxDensity, err := maths.NewAkimaSpline(induction, permeability,
		[]float64{0}, []float64{mr})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInputData, err)
	}

	return &FerromagneticPermeability{
		FromFieldStrength: fromFieldStrength,
		FromFluxDensity:   fromFluxDensity,
	}, nil
}

// FromPolarization 由极化曲线构建磁导率特性。
// 曲线先转换为磁化曲线，再走 FromMagnetization 的构建流程。
func FromPolarization(rawCurve *PolarizationCurve) (*FerromagneticPermeability, error) {
	magnetization, err := rawCurve.Magnetization()
	if err != nil {
		return nil, err
	}
	return FromMagnetization(magnetization)
}

// clampPermeability 磁导率的物理下限是真空磁导率 (µr = 1)。
func clampPermeability(value float64) float64 {
	if value < 1.0 {
		return 1.0
	}
	return value
}

// Get 返回给定磁场强度或磁通密度下的相对磁导率。
// 按 value 的单位选择对应的样条，在输入绝对值处求值（磁导率关于
// 零点对称，B / H 的符号无关紧要），结果钳位到 µr >= 1。
// 单位既不是磁场强度也不是磁通密度时按磁通密度处理。
func (p *FerromagneticPermeability) Get(value types.Quantity) float64 {
	switch value.Unit {
	case types.FieldStrength:
		return clampPermeability(p.FromFieldStrength.EvalInfallible(math.Abs(value.Value)))
	default:
		return clampPermeability(p.FromFluxDensity.EvalInfallible(math.Abs(value.Value)))
	}
}

// Call 实现 types.QuantityFunc。在输入条件中查找磁通密度或磁场强度
// 并求出对应的相对磁导率；两者同时存在时磁通密度优先。条件中
// 二者皆无时返回 0 T 处的磁导率（与 0 A/m 处相等）。
func (p *FerromagneticPermeability) Call(conditions []types.Quantity) types.Quantity {
	var fieldStrength *types.Quantity
	for i := range conditions {
		switch conditions[i].Unit {
		case types.FluxDensity:
			return types.NewQuantity(p.Get(conditions[i]), types.Dimensionless)
		case types.FieldStrength:
			if fieldStrength == nil {
				fieldStrength = &conditions[i]
			}
		}
	}
	if fieldStrength != nil {
		return types.NewQuantity(p.Get(*fieldStrength), types.Dimensionless)
	}
	return types.NewQuantity(p.Get(types.NewQuantity(0, types.FluxDensity)), types.Dimensionless)
}

// UnmarshalJSON 支持三种序列化形式的反序列化:
//
//  1. 原生形式: 两条样条的结构体
//  2. 磁化曲线 (MagnetizationCurve)
//  3. 极化曲线 (PolarizationCurve)
//
// 后两种情况下先反序列化出曲线数据，再重新运行完整的构建流程。
func (p *FerromagneticPermeability) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if _, ok := probe["from_field_strength"]; ok {
		var alias struct {
			FromFieldStrength *maths.AkimaSpline `json:"from_field_strength"`
			FromFluxDensity   *maths.AkimaSpline `json:"from_flux_density"`
		}
		if err := json.Unmarshal(data, &alias); err != nil {
			return err
		}
		if alias.FromFieldStrength == nil || alias.FromFluxDensity == nil {
			return fmt.Errorf("%w: 缺少 from_field_strength 或 from_flux_density 样条", ErrInvalidInputData)
		}
		p.FromFieldStrength = alias.FromFieldStrength
		p.FromFluxDensity = alias.FromFluxDensity
		return nil
	}

	if _, ok := probe["polarization"]; ok {
		var curve PolarizationCurve
		if err := json.Unmarshal(data, &curve); err != nil {
			return err
		}
		built, err := FromPolarization(&curve)
		if err != nil {
			return err
		}
		*p = *built
		return nil
	}

	if _, ok := probe["flux_density"]; ok {
		var curve MagnetizationCurve
		if err := json.Unmarshal(data, &curve); err != nil {
			return err
		}
		built, err := FromMagnetization(&curve)
		if err != nil {
			return err
		}
		*p = *built
		return nil
	}

	return fmt.Errorf("%w: 无法识别的磁导率序列化形式", ErrInvalidInputData)
}
