package ironloss

import (
	"github.com/StefanMathis/stem-material/types"
)

// FluxDensityLossPair 损耗特性曲线上的单个数据点: 正弦磁场在给定
// 幅值下在叠片中产生的比损耗。
type FluxDensityLossPair struct {
	FluxDensity  types.Quantity `json:"flux_density"`  // 磁通密度幅值 (T)
	SpecificLoss types.Quantity `json:"specific_loss"` // 比损耗 (W/kg)
}

// NewFluxDensityLossPair 由数值创建数据点。
func NewFluxDensityLossPair(fluxDensity, specificLoss float64) FluxDensityLossPair {
	return FluxDensityLossPair{
		FluxDensity:  types.NewQuantity(fluxDensity, types.FluxDensity),
		SpecificLoss: types.NewQuantity(specificLoss, types.SpecificPower),
	}
}

// IronLossCharacteristic 单一频率下的铁损特性曲线。
//
// 数据通常来自叠片制造商的数据手册，或通过对样品施加给定频率、
// 不同幅值的正弦磁场测量得到。频率应为正值（负频率没有物理意义，
// 零频率下损耗也为零）。数据点的顺序无关紧要。
type IronLossCharacteristic struct {
	Frequency      types.Quantity        `json:"frequency"`
	Characteristic []FluxDensityLossPair `json:"characteristic"`
}

// NewIronLossCharacteristic 由频率和数据点集合创建损耗特性。
func NewIronLossCharacteristic(frequency float64, characteristic []FluxDensityLossPair) IronLossCharacteristic {
	return IronLossCharacteristic{
		Frequency:      types.NewQuantity(frequency, types.Frequency),
		Characteristic: characteristic,
	}
}

// CharacteristicFromVecs 由频率、磁通密度序列和比损耗序列创建损耗
// 特性。两个序列按下标配对，多余的尾部数据被丢弃。
func CharacteristicFromVecs(frequency float64, fluxDensities, specificLosses []float64) IronLossCharacteristic {
	n := len(fluxDensities)
	if len(specificLosses) < n {
		n = len(specificLosses)
	}
	characteristic := make([]FluxDensityLossPair, 0, n)
	for i := 0; i < n; i++ {
		characteristic = append(characteristic, NewFluxDensityLossPair(fluxDensities[i], specificLosses[i]))
	}
	return NewIronLossCharacteristic(frequency, characteristic)
}

// IronLossData 多个频率下的完整损耗测量数据集，用于拟合
// JordanModel 的损耗系数。
type IronLossData []IronLossCharacteristic

// flatten 把数据集展平成三个等长的平行序列。
func (d IronLossData) flatten() (frequencies, fluxDensities, specificLosses []float64) {
	numElems := 0
	for _, characteristic := range d {
		numElems += len(characteristic.Characteristic)
	}
	frequencies = make([]float64, 0, numElems)
	fluxDensities = make([]float64, 0, numElems)
	specificLosses = make([]float64, 0, numElems)

	for _, characteristic := range d {
		for _, pair := range characteristic.Characteristic {
			frequencies = append(frequencies, characteristic.Frequency.Value)
			fluxDensities = append(fluxDensities, pair.FluxDensity.Value)
			specificLosses = append(specificLosses, pair.SpecificLoss.Value)
		}
	}
	return frequencies, fluxDensities, specificLosses
}
