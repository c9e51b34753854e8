package permeability

import (
	"encoding/json"
	"fmt"

	"github.com/StefanMathis/stem-material/types"
)

// RelativePermeability 相对磁导率的专用变体类型。
//
// 原则上 FerromagneticPermeability 也可以作为 types.QuantityFunc
// 接口对象使用，但在材料属性查询的热路径上，为已知模型保留专用
// 变体可以避免接口间接调用。用户自定义的磁导率模型仍然可以通过
// 函数变体接入。
type RelativePermeability struct {
	kind  permeabilityKind
	value float64
	model *FerromagneticPermeability
	fn    types.QuantityFunc
}

type permeabilityKind int

const (
	permeabilityConstant permeabilityKind = iota // 常量
	permeabilityModel                            // 铁磁材料模型
	permeabilityFunction                         // 任意函数
)

// ConstPermeability 常量相对磁导率。
func ConstPermeability(value float64) RelativePermeability {
	return RelativePermeability{kind: permeabilityConstant, value: value}
}

// ModelPermeability 由铁磁材料模型给出的相对磁导率。
func ModelPermeability(model *FerromagneticPermeability) RelativePermeability {
	return RelativePermeability{kind: permeabilityModel, model: model}
}

// FuncPermeability 由任意用户函数给出的相对磁导率。
func FuncPermeability(fn types.QuantityFunc) RelativePermeability {
	return RelativePermeability{kind: permeabilityFunction, fn: fn}
}

// Get 按变体计算给定条件下的相对磁导率。
func (r *RelativePermeability) Get(conditions []types.Quantity) float64 {
	switch r.kind {
	case permeabilityConstant:
		return r.value
	case permeabilityModel:
		return r.model.Call(conditions).Value
	default:
		return r.fn.Call(conditions).Value
	}
}

// Model 返回底层的铁磁材料模型，非模型变体返回 nil。
func (r *RelativePermeability) Model() *FerromagneticPermeability {
	if r.kind == permeabilityModel {
		return r.model
	}
	return nil
}

// Function 返回底层的用户函数，非函数变体返回 nil。
func (r *RelativePermeability) Function() types.QuantityFunc {
	if r.kind == permeabilityFunction {
		return r.fn
	}
	return nil
}

// MarshalJSON 常量序列化为裸数字，铁磁材料模型序列化为带
// "FerromagneticPermeability" 标签的对象。函数变体无法序列化。
func (r RelativePermeability) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case permeabilityConstant:
		return json.Marshal(r.value)
	case permeabilityModel:
		return json.Marshal(map[string]*FerromagneticPermeability{
			"FerromagneticPermeability": r.model,
		})
	default:
		return nil, fmt.Errorf("用户函数形式的相对磁导率无法序列化")
	}
}

// UnmarshalJSON 支持裸数字（常量变体）和带 "FerromagneticPermeability"
// 标签的对象（模型变体，标签内容支持 FerromagneticPermeability 的
// 全部三种序列化形式）。
func (r *RelativePermeability) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*r = ConstPermeability(value)
		return nil
	}

	var tagged struct {
		FerromagneticPermeability *FerromagneticPermeability `json:"FerromagneticPermeability"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if tagged.FerromagneticPermeability == nil {
		return fmt.Errorf("%w: 无法识别的相对磁导率序列化形式", ErrInvalidInputData)
	}
	*r = ModelPermeability(tagged.FerromagneticPermeability)
	return nil
}
