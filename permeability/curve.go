package permeability

import (
	"errors"
	"fmt"

	"github.com/StefanMathis/stem-material/types"
)

// ErrInvalidInputData 表示原始测量数据无法构建磁导率模型。
// 具体原因（填充系数越界、数据点数量不一致、样条构建失败）
// 包装在返回的错误信息中。
var ErrInvalidInputData = errors.New("无效的输入数据")

// MagnetizationCurve 材料磁化曲线的原始数据点集合。
//
// 曲线由若干 B / H 数据点组成，按照 B = µ0 * µr * H，二者之商
// 即为该工作点下的绝对磁导率 µ0 * µr。
//
// 铁磁材料的数据曲线通常在整块材料上测得，而电机铁芯是由带绝缘层的
// 薄片叠压而成的。绝缘层的相对磁导率约为 1，因此计算出的 µr 需要按
// 铁磁材料与绝缘层的比例修正。这个比例称为铁芯填充系数
// (IronFillFactor)，取值范围为 1（整块材料，无绝缘层）到 0（只有
// 绝缘层），常见值在 0.95 到 0.98 之间。
type MagnetizationCurve struct {
	FieldStrength  []float64 `json:"field_strength"`   // 磁场强度 (A/m)
	FluxDensity    []float64 `json:"flux_density"`     // 磁通密度 (T)
	IronFillFactor float64   `json:"iron_fill_factor"` // 铁芯填充系数 [0,1]
}

// NewMagnetizationCurve 创建磁化曲线并校验数据完整性。
func NewMagnetizationCurve(fieldStrength, fluxDensity []float64, ironFillFactor float64) (*MagnetizationCurve, error) {
	curve := &MagnetizationCurve{
		FieldStrength:  fieldStrength,
		FluxDensity:    fluxDensity,
		IronFillFactor: ironFillFactor,
	}
	if err := curve.check(); err != nil {
		return nil, err
	}
	return curve, nil
}

// check 校验数据完整性。
func (c *MagnetizationCurve) check() error {
	if c.IronFillFactor > 1.0 || c.IronFillFactor < 0.0 {
		return fmt.Errorf("%w: 铁芯填充系数必须在 0 和 1 之间, 实际为 %v", ErrInvalidInputData, c.IronFillFactor)
	}
	if len(c.FieldStrength) != len(c.FluxDensity) {
		return fmt.Errorf("%w: 磁场强度有 %d 个数据点, 磁通密度有 %d 个数据点 (应当相等)",
			ErrInvalidInputData, len(c.FieldStrength), len(c.FluxDensity))
	}
	return nil
}

// PolarizationCurve 材料极化曲线的原始数据点集合。
//
// 磁极化强度 J 与磁通密度 B、磁场强度 H 通过 J = B - µ0 * H 关联，
// 因此极化曲线只是磁化曲线的另一种表示方式，可以通过
// Magnetization 方法转换。填充系数的含义见 MagnetizationCurve。
type PolarizationCurve struct {
	FieldStrength  []float64 `json:"field_strength"`   // 磁场强度 (A/m)
	Polarization   []float64 `json:"polarization"`     // 磁极化强度 (T)
	IronFillFactor float64   `json:"iron_fill_factor"` // 铁芯填充系数 [0,1]
}

// NewPolarizationCurve 创建极化曲线并校验数据完整性。
func NewPolarizationCurve(fieldStrength, polarization []float64, ironFillFactor float64) (*PolarizationCurve, error) {
	curve := &PolarizationCurve{
		FieldStrength:  fieldStrength,
		Polarization:   polarization,
		IronFillFactor: ironFillFactor,
	}
	if err := curve.check(); err != nil {
		return nil, err
	}
	return curve, nil
}

// check 校验数据完整性。
func (c *PolarizationCurve) check() error {
	if c.IronFillFactor > 1.0 || c.IronFillFactor < 0.0 {
		return fmt.Errorf("%w: 铁芯填充系数必须在 0 和 1 之间, 实际为 %v", ErrInvalidInputData, c.IronFillFactor)
	}
	if len(c.FieldStrength) != len(c.Polarization) {
		return fmt.Errorf("%w: 磁场强度有 %d 个数据点, 磁极化强度有 %d 个数据点 (应当相等)",
			ErrInvalidInputData, len(c.FieldStrength), len(c.Polarization))
	}
	return nil
}

// Magnetization 按 B = J + µ0 * H 转换为磁化曲线。
func (c *PolarizationCurve) Magnetization() (*MagnetizationCurve, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	fluxDensity := make([]float64, len(c.Polarization))
	for i, j := range c.Polarization {
		fluxDensity[i] = j + c.FieldStrength[i]*types.VacuumPermeability
	}
	return &MagnetizationCurve{
		FieldStrength:  append([]float64(nil), c.FieldStrength...),
		FluxDensity:    fluxDensity,
		IronFillFactor: c.IronFillFactor,
	}, nil
}
