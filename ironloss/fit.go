package ironloss

import (
	"errors"
	"fmt"

	"github.com/StefanMathis/stem-material/maths"
	"github.com/StefanMathis/stem-material/types"
)

// ErrCoefficientCalculation 表示由损耗数据集拟合 Jordan 模型系数
// 失败，通常是因为输入数据不佳。底层求解器的错误信息（如果有）
// 包装在返回的错误中。
var ErrCoefficientCalculation = errors.New("损耗系数计算失败")

// Fit 把数据集中的所有数据点最小二乘拟合进损耗方程，返回拟合出的
// Jordan 模型。
//
// 代价函数是所有数据点的残差平方和 (单位 (W/kg)²)，用标准系数的
// Nelder-Mead 单纯形法最小化。单纯形的三个起始顶点取 (3, 3)、
// (2, 1.5) 和 (1, 0.5) W/kg；当各顶点代价值的标准差低于
// types.FitTolerance 时视为收敛，迭代上限见 types.FitMaxIterations。
// 拟合失败时返回包装了 ErrCoefficientCalculation 的错误。
func Fit(data IronLossData) (*JordanModel, error) {
	frequencies, fluxDensities, specificLosses := data.flatten()

	cost := func(p []float64) float64 {
		residual := 0.0 // (W/kg)²
		for i := range frequencies {
			diff := specificLosses[i] - predictedLosses(fluxDensities[i], frequencies[i], p[0], p[1])
			residual += diff * diff
		}
		return residual
	}

	// 起始单纯形，所有值的单位都是 W/kg
	vertices := [][]float64{
		{3.0, 3.0},
		{2.0, 1.5},
		{1.0, 0.5},
	}

	coefficients, err := maths.MinimizeNelderMead(cost, vertices, types.FitTolerance, types.FitMaxIterations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCoefficientCalculation, err)
	}

	return NewJordanModel(coefficients[0], coefficients[1]), nil
}
