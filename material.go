// Package stemmaterial 电机仿真中的材料属性建模。
//
// 一个材料 (Material) 就是一组物理属性的集合: 质量密度、电阻率、
// 热容等等。其中非线性的两个属性有专门的模型实现:
//
//   - permeability 包: 由测量的磁化 / 极化曲线构建铁磁材料的
//     相对磁导率样条模型
//   - ironloss 包: 由多频率损耗测量曲线拟合 Jordan 铁损模型
//
// 所有属性都通过 types.VarQuantity 表示，可以是常量，也可以是
// 随外部条件（温度、磁通密度等）变化的函数。
package stemmaterial

import (
	"encoding/json"
	"math"

	"github.com/StefanMathis/stem-material/ironloss"
	"github.com/StefanMathis/stem-material/permeability"
	"github.com/StefanMathis/stem-material/types"
)

// Material 构成物体（例如磁体或绕组导线）的物质。
//
// 这个结构就是其各部分属性的总和，每个字段都可以直接访问。所有
// 属性都以 SI 单位表示，并且被认为是均匀的（不随材料取向变化）。
// 属性字段使用变体类型表示属性随外部条件的变化（例如电阻率随温度
// 上升）。
//
// 材料的属性取值必须始终合理，否则计算可能产生非物理的结果甚至
// 完全失败（例如负的电阻率会导致负的损耗，意味着电机电流越大反而
// 越冷）。一般准则: 属性在任何条件下都不应返回负值。变体类型允许
// 接入任意的用户函数，框架无法对此做出保证。
//
// 反序列化时缺失的属性字段取 NewMaterial 给出的默认值。
type Material struct {
	// 材料名称, 例如 "Copper"
	Name string `json:"name"`

	// 相对磁导率。真空为 1。默认值 1。
	RelativePermeability permeability.RelativePermeability `json:"relative_permeability"`

	// 比铁损。默认值 0 W/kg。
	IronLosses ironloss.IronLosses `json:"iron_losses"`

	// 剩磁。除永磁体外通常为零; 对永磁体而言是磁化方向 (易磁化轴)
	// 上的剩磁。默认值 0 T。
	Remanence types.VarQuantity `json:"remanence"`

	// 内禀矫顽力。除永磁体外通常为零; 对永磁体而言是磁化方向上的
	// 矫顽力。默认值 0 A/m。
	IntrinsicCoercivity types.VarQuantity `json:"intrinsic_coercivity"`

	// 电阻率。绝缘体为无穷大, 超导体为零。默认值 +Inf Ω·m。
	ElectricalResistivity types.VarQuantity `json:"electrical_resistivity"`

	// 质量密度。默认值 1000 kg/m³。
	MassDensity types.VarQuantity `json:"mass_density"`

	// 比热容。默认值 0 J/(kg·K)。
	HeatCapacity types.VarQuantity `json:"heat_capacity"`

	// 导热系数。默认值 0 W/(m·K)。
	ThermalConductivity types.VarQuantity `json:"thermal_conductivity"`
}

// NewMaterial 创建一个所有属性均为默认值的材料，供增量构建使用。
func NewMaterial(name string) *Material {
	return &Material{
		Name:                  name,
		RelativePermeability:  permeability.ConstPermeability(1.0),
		IronLosses:            ironloss.ConstLosses(0.0),
		Remanence:             types.ConstVarQuantity(types.NewQuantity(0, types.FluxDensity)),
		IntrinsicCoercivity:   types.ConstVarQuantity(types.NewQuantity(0, types.FieldStrength)),
		ElectricalResistivity: types.ConstVarQuantity(types.NewQuantity(math.Inf(1), types.Resistivity)),
		MassDensity:           types.ConstVarQuantity(types.NewQuantity(1000, types.MassDensity)),
		HeatCapacity:          types.ConstVarQuantity(types.NewQuantity(0, types.HeatCapacity)),
		ThermalConductivity:   types.ConstVarQuantity(types.NewQuantity(0, types.ThermalConductivity)),
	}
}

// UnmarshalJSON 反序列化材料。序列化数据中缺失的属性字段保持
// NewMaterial 的默认值。
func (m *Material) UnmarshalJSON(data []byte) error {
	*m = *NewMaterial("")
	type alias Material
	return json.Unmarshal(data, (*alias)(m))
}
