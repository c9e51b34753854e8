package ironloss

import (
	"encoding/json"
	"fmt"

	"github.com/StefanMathis/stem-material/types"
)

// IronLosses 铁损的专用变体类型。
//
// 与 permeability.RelativePermeability 同理: 为常量和内置的 Jordan
// 模型保留专用变体，避免热路径上的接口间接调用；用户自定义的损耗
// 模型通过函数变体接入。
type IronLosses struct {
	kind  lossKind
	value types.Quantity
	model *JordanModel
	fn    types.QuantityFunc
}

type lossKind int

const (
	lossConstant lossKind = iota // 常量
	lossJordan                   // Jordan 模型
	lossFunction                 // 任意函数
)

// ConstLosses 常量比损耗 (W/kg)。
func ConstLosses(value float64) IronLosses {
	return IronLosses{kind: lossConstant, value: types.NewQuantity(value, types.SpecificPower)}
}

// JordanLosses 由 Jordan 模型给出的比损耗。
func JordanLosses(model *JordanModel) IronLosses {
	return IronLosses{kind: lossJordan, model: model}
}

// FuncLosses 由任意用户函数给出的比损耗。
func FuncLosses(fn types.QuantityFunc) IronLosses {
	return IronLosses{kind: lossFunction, fn: fn}
}

// Get 按变体计算给定条件下的比损耗 (W/kg)。
func (l *IronLosses) Get(conditions []types.Quantity) types.Quantity {
	switch l.kind {
	case lossConstant:
		return l.value
	case lossJordan:
		return l.model.Call(conditions)
	default:
		return l.fn.Call(conditions)
	}
}

// Model 返回底层的 Jordan 模型，非模型变体返回 nil。
func (l *IronLosses) Model() *JordanModel {
	if l.kind == lossJordan {
		return l.model
	}
	return nil
}

// Function 返回底层的用户函数，非函数变体返回 nil。
func (l *IronLosses) Function() types.QuantityFunc {
	if l.kind == lossFunction {
		return l.fn
	}
	return nil
}

// MarshalJSON 常量序列化为带单位的标量，Jordan 模型序列化为带
// "JordanModel" 标签的对象。函数变体无法序列化。
func (l IronLosses) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case lossConstant:
		return json.Marshal(l.value)
	case lossJordan:
		return json.Marshal(map[string]*JordanModel{"JordanModel": l.model})
	default:
		return nil, fmt.Errorf("用户函数形式的铁损模型无法序列化")
	}
}

// UnmarshalJSON 支持裸数字或带单位的标量（常量变体）和带
// "JordanModel" 标签的对象（模型变体，标签内容支持 JordanModel 的
// 两种序列化形式）。
func (l *IronLosses) UnmarshalJSON(data []byte) error {
	var value types.Quantity
	if err := json.Unmarshal(data, &value); err == nil {
		if value.Unit == types.Dimensionless {
			value.Unit = types.SpecificPower
		}
		*l = IronLosses{kind: lossConstant, value: value}
		return nil
	}

	var tagged struct {
		JordanModel *JordanModel `json:"JordanModel"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if tagged.JordanModel == nil {
		return fmt.Errorf("无法识别的铁损模型序列化形式")
	}
	*l = JordanLosses(tagged.JordanModel)
	return nil
}
