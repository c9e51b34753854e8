package types

import (
	"encoding/json"
	"fmt"
)

// VarQuantity 可变物理量：要么是常量，要么是随物理条件变化的函数。
// 常量情形直接保存数值，避免经过接口的动态分发。
type VarQuantity struct {
	constant Quantity
	fn       QuantityFunc
}

// ConstVarQuantity 创建一个常量物理量。
func ConstVarQuantity(q Quantity) VarQuantity {
	return VarQuantity{constant: q}
}

// FuncVarQuantity 创建一个由自定义函数决定的物理量。
func FuncVarQuantity(fn QuantityFunc) VarQuantity {
	return VarQuantity{fn: fn}
}

// Get 返回给定条件下的物理量。常量情形忽略条件。
func (v VarQuantity) Get(conditions []Quantity) Quantity {
	if v.fn != nil {
		return v.fn.Call(conditions)
	}
	return v.constant
}

// Function 返回底层的自定义函数。常量情形返回 nil。
func (v VarQuantity) Function() QuantityFunc {
	return v.fn
}

// MarshalJSON 常量序列化为带单位标量。自定义函数无法序列化。
func (v VarQuantity) MarshalJSON() ([]byte, error) {
	if v.fn != nil {
		return nil, fmt.Errorf("自定义物理条件函数无法序列化")
	}
	return json.Marshal(v.constant)
}

// UnmarshalJSON 反序列化为常量物理量。
func (v *VarQuantity) UnmarshalJSON(data []byte) error {
	var q Quantity
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	*v = ConstVarQuantity(q)
	return nil
}
