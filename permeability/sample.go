package permeability

import (
	"fmt"
	"math"

	"github.com/StefanMathis/stem-material/maths"
	"github.com/StefanMathis/stem-material/types"
)

// SampleBHCurve 对原始 B(H) 数据自适应重采样，使相邻支撑点之间的
// 割线磁导率相对变化不超过 changeTol。
//
// 先在原始数据上建立一条 B(H) 样条（两侧以真空磁导率为斜率线性外推，
// 保证求值总是有定义），再从 H=0 起以固定步长向前扫描。H=0 与第一步
// 总是保留；之后只有当 |Δµ|/µ_prev 超过 changeTol 时才保留该点，
// 超过原始数据中最大磁场强度后停止。由此得到的缩减点集保证了
// 任何一段上不会静默插值掉大于容差的磁导率跳变，同时控制了
// 下游样条的规模。
func SampleBHCurve(fieldStrength, fluxDensity []float64, changeTol float64) ([]float64, []float64, error) {
	if len(fieldStrength) == 0 {
		return nil, nil, fmt.Errorf("%w: 磁化曲线至少需要一个数据点", ErrInvalidInputData)
	}

	maxFieldStrength := fieldStrength[0]
	for _, h := range fieldStrength[1:] {
		if h > maxFieldStrength {
			maxFieldStrength = h
		}
	}

	bhCurve, err := maths.NewAkimaSpline(fieldStrength, fluxDensity,
		[]float64{types.VacuumPermeability}, []float64{types.VacuumPermeability})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInputData, err)
	}

	step := types.SampleStepWidth
	hSampled := make([]float64, 0, 1000)
	bSampled := make([]float64, 0, 1000)

	// 起始两个支撑点总是保留
	hSampled = append(hSampled, 0)
	bSampled = append(bSampled, 0)
	hSampled = append(hSampled, step)
	bSampled = append(bSampled, bhCurve.EvalInfallible(step))

	for current := 2 * step; current < maxFieldStrength; current += step {
		muPrev := bSampled[len(bSampled)-1] / hSampled[len(hSampled)-1]
		currentFluxDensity := bhCurve.EvalInfallible(current)
		muCurrent := currentFluxDensity / current

		// 容差被超过时保留当前点作为支撑点，否则跳过
		if math.Abs(muPrev-muCurrent)/muPrev > changeTol {
			hSampled = append(hSampled, current)
			bSampled = append(bSampled, currentFluxDensity)
		}
	}

	return hSampled, bSampled, nil
}
