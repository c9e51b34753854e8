package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit 物理单位标记。采用封闭的枚举集合而不是完整的量纲系统，
// 材料属性查询只需要按单位区分条件，不需要单位运算。
type Unit int

// 支持的物理单位
const (
	Dimensionless       Unit = iota // 无量纲
	FieldStrength                   // 磁场强度 A/m
	FluxDensity                     // 磁通密度 T
	Frequency                       // 频率 Hz
	SpecificPower                   // 比功率 W/kg
	Temperature                     // 温度 °C
	Resistivity                     // 电阻率 Ω·m
	MassDensity                     // 质量密度 kg/m³
	HeatCapacity                    // 比热容 J/(kg·K)
	ThermalConductivity             // 导热系数 W/(m·K)
	Permeability                    // 磁导率 H/m
)

var unitSymbols = map[Unit]string{
	Dimensionless:       "",
	FieldStrength:       "A/m",
	FluxDensity:         "T",
	Frequency:           "Hz",
	SpecificPower:       "W/kg",
	Temperature:         "°C",
	Resistivity:         "Ω·m",
	MassDensity:         "kg/m³",
	HeatCapacity:        "J/(kg·K)",
	ThermalConductivity: "W/(m·K)",
	Permeability:        "H/m",
}

// 解析时允许的别名写法
var unitAliases = map[string]Unit{
	"A/m":      FieldStrength,
	"T":        FluxDensity,
	"Hz":       Frequency,
	"W/kg":     SpecificPower,
	"°C":       Temperature,
	"C":        Temperature,
	"Ω·m":      Resistivity,
	"Ohm·m":    Resistivity,
	"Ohm*m":    Resistivity,
	"kg/m³":    MassDensity,
	"kg/m^3":   MassDensity,
	"J/(kg·K)": HeatCapacity,
	"J/(kg*K)": HeatCapacity,
	"W/(m·K)":  ThermalConductivity,
	"W/(m*K)":  ThermalConductivity,
	"H/m":      Permeability,
}

// String 返回单位符号，如 "T"、"W/kg"。无量纲返回空字符串。
func (u Unit) String() string {
	if s, ok := unitSymbols[u]; ok {
		return s
	}
	return "?"
}

// ParseUnit 由单位符号解析单位标记。空字符串视为无量纲。
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return Dimensionless, nil
	}
	if u, ok := unitAliases[s]; ok {
		return u, nil
	}
	return Dimensionless, fmt.Errorf("未知的物理单位 '%s'", s)
}

// Quantity 带单位标量。用于向材料属性模型传递物理条件
// （如温度、频率、磁通密度）并接收计算结果。
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity 创建一个带单位标量。
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// String 格式化为 "数值 单位"，如 "0.5 T"。无量纲只输出数值。
func (q Quantity) String() string {
	value := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == Dimensionless {
		return value
	}
	return value + " " + q.Unit.String()
}

// ParseQuantity 解析 "数值 单位" 形式的字符串，如 "50 Hz"。
func ParseQuantity(s string) (Quantity, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	switch len(fields) {
	case 1:
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Quantity{}, fmt.Errorf("无法解析数值 '%s': %w", fields[0], err)
		}
		return NewQuantity(value, Dimensionless), nil
	case 2:
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Quantity{}, fmt.Errorf("无法解析数值 '%s': %w", fields[0], err)
		}
		unit, err := ParseUnit(fields[1])
		if err != nil {
			return Quantity{}, err
		}
		return NewQuantity(value, unit), nil
	default:
		return Quantity{}, fmt.Errorf("无法解析带单位标量 '%s'", s)
	}
}

// MarshalJSON 无量纲序列化为裸数值，带单位序列化为 "数值 单位" 字符串。
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Unit == Dimensionless {
		return []byte(strconv.FormatFloat(q.Value, 'g', -1, 64)), nil
	}
	return []byte(strconv.Quote(q.String())), nil
}

// UnmarshalJSON 接受裸数值（无量纲）或 "数值 单位" 字符串两种形式。
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) > 0 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		parsed, err := ParseQuantity(unquoted)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("无法解析带单位标量 '%s': %w", s, err)
	}
	*q = NewQuantity(value, Dimensionless)
	return nil
}

// QuantityFunc 物理条件函数：由一组带单位的条件计算出一个带单位标量。
// 实现方按单位在 conditions 中查找自己需要的条件，顺序不应影响结果。
type QuantityFunc interface {
	Call(conditions []Quantity) Quantity
}
