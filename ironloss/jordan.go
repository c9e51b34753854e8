package ironloss

import (
	"bytes"
	"encoding/json"

	"github.com/StefanMathis/stem-material/types"
)

// JordanModel Jordan 铁损模型。
//
// 模型针对磁通密度随时间正弦变化的情况，把铁损分解为静态磁滞损耗
// 和动态涡流损耗两部分:
//
//	p = kh * f * B² + kec * (f * B)²
//
// 其中频率 f 归一化到 50 Hz (types.ReferenceFrequency)，磁通密度
// 幅值 B 归一化到 1.5 T (types.ReferenceFluxDensity)，与文献中常用
// 的归一化系数一致。磁滞损耗系数 kh 与涡流损耗系数 kec 由测量的
// 损耗曲线拟合得到，见 Fit。
//
// 文献:
//
//	Krings, A. / Soulard, J.: Overview and comparison of iron loss
//	models for electrical machines. EVRE Monaco, 2010.
//	Müller, G. / Vogt, K. / Ponick, B.: Berechnung elektrischer
//	Maschinen, 6. Aufl., Wiley-VCH, 2008, Gl. (6.4.10) / (6.4.11).
type JordanModel struct {
	HysteresisCoefficient  types.Quantity `json:"hysteresis_coefficient"`   // 磁滞损耗系数 kh (W/kg)
	EddyCurrentCoefficient types.Quantity `json:"eddy_current_coefficient"` // 涡流损耗系数 kec (W/kg)
}

// NewJordanModel 由两个损耗系数 (W/kg) 创建模型。
func NewJordanModel(hysteresisCoefficient, eddyCurrentCoefficient float64) *JordanModel {
	return &JordanModel{
		HysteresisCoefficient:  types.NewQuantity(hysteresisCoefficient, types.SpecificPower),
		EddyCurrentCoefficient: types.NewQuantity(eddyCurrentCoefficient, types.SpecificPower),
	}
}

// predictedLosses 损耗方程本体。拟合的代价函数和模型求值共用。
func predictedLosses(fluxDensity, frequency, hysteresisCoefficient, eddyCurrentCoefficient float64) float64 {
	f := frequency / types.ReferenceFrequency
	b := fluxDensity / types.ReferenceFluxDensity
	return hysteresisCoefficient*f*b*b + eddyCurrentCoefficient*f*f*b*b
}

// Losses 返回幅值为 fluxDensity (T)、频率为 frequency (Hz) 的正弦
// 磁通密度产生的比损耗 (W/kg)。对任意实数输入都有定义，平方项使
// 符号无关紧要。
func (m *JordanModel) Losses(fluxDensity, frequency float64) float64 {
	return predictedLosses(fluxDensity, frequency,
		m.EddyCurrentCoefficient.Value, m.HysteresisCoefficient.Value)
}

// Call 实现 types.QuantityFunc。在输入条件中查找磁通密度和频率，
// 缺失的一方按零处理（此时损耗也为零）。
func (m *JordanModel) Call(conditions []types.Quantity) types.Quantity {
	fluxDensity := 0.0
	frequency := 0.0
	for _, factor := range conditions {
		switch factor.Unit {
		case types.FluxDensity:
			fluxDensity = factor.Value
		case types.Frequency:
			frequency = factor.Value
		}
	}
	return types.NewQuantity(m.Losses(fluxDensity, frequency), types.SpecificPower)
}

// UnmarshalJSON 支持两种序列化形式的反序列化:
//
//  1. 原生形式: 两个损耗系数的结构体
//  2. 损耗数据集 (IronLossData 的数组形式)
//
// 后者先反序列化出数据集，再重新运行 Fit 拟合出系数。
func (m *JordanModel) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var lossData IronLossData
		if err := json.Unmarshal(data, &lossData); err != nil {
			return err
		}
		fitted, err := Fit(lossData)
		if err != nil {
			return err
		}
		*m = *fitted
		return nil
	}

	var alias struct {
		HysteresisCoefficient  types.Quantity `json:"hysteresis_coefficient"`
		EddyCurrentCoefficient types.Quantity `json:"eddy_current_coefficient"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	// 裸数字形式的系数没有单位信息，统一按 W/kg 处理
	alias.HysteresisCoefficient.Unit = types.SpecificPower
	alias.EddyCurrentCoefficient.Unit = types.SpecificPower
	m.HysteresisCoefficient = alias.HysteresisCoefficient
	m.EddyCurrentCoefficient = alias.EddyCurrentCoefficient
	return nil
}
