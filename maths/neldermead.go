package maths

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Nelder-Mead 单纯形法的标准系数
const (
	nmReflection  = 1.0 // 反射系数 α
	nmExpansion   = 2.0 // 扩张系数 γ
	nmContraction = 0.5 // 收缩系数 ρ
	nmShrink      = 0.5 // 整体收缩系数 σ
)

// simplexVertex 单纯形的一个顶点及其代价值。
type simplexVertex struct {
	x    []float64
	cost float64
}

// MinimizeNelderMead 用标准系数的 Nelder-Mead 单纯形法最小化 cost，
// 返回找到的最优参数向量。
//
// initial 是起始单纯形的顶点集合: n 维问题需要 n+1 个顶点。当各顶点
// 代价值的标准差低于 sdTolerance 时视为收敛；无论是否收敛，至多迭代
// maxIterations 次后返回当前最优顶点。
//
// 每次迭代把最差顶点沿单纯形质心反射，按反射点的代价值决定接受反射、
// 尝试扩张还是向最差顶点收缩；收缩也无改善时整个单纯形向最优顶点
// 收缩。
func MinimizeNelderMead(cost func([]float64) float64, initial [][]float64, sdTolerance float64, maxIterations int) ([]float64, error) {
	n := len(initial)
	if n < 2 {
		return nil, fmt.Errorf("单纯形至少需要两个顶点, 实际只有 %d 个", n)
	}
	dim := len(initial[0])
	if n != dim+1 {
		return nil, fmt.Errorf("%d 维问题的单纯形需要 %d 个顶点, 实际有 %d 个", dim, dim+1, n)
	}
	for _, vertex := range initial[1:] {
		if len(vertex) != dim {
			return nil, fmt.Errorf("单纯形顶点的维数不一致")
		}
	}

	simplex := make([]simplexVertex, n)
	for i, vertex := range initial {
		x := append([]float64(nil), vertex...)
		simplex[i] = simplexVertex{x: x, cost: cost(x)}
	}
	sortSimplex(simplex)

	costs := make([]float64, n)
	diff := make([]float64, dim)
	for iter := 0; iter < maxIterations; iter++ {
		for i, vertex := range simplex {
			costs[i] = vertex.cost
		}
		if stat.PopStdDev(costs, nil) < sdTolerance {
			break
		}

		// 除最差顶点外的所有顶点的质心
		centroid := make([]float64, dim)
		for i := 0; i < n-1; i++ {
			floats.Add(centroid, simplex[i].x)
		}
		floats.Scale(1/float64(n-1), centroid)

		worst := simplex[n-1]
		floats.SubTo(diff, centroid, worst.x)
		reflected := make([]float64, dim)
		floats.AddScaledTo(reflected, centroid, nmReflection, diff)
		reflectedCost := cost(reflected)

		switch {
		case reflectedCost < simplex[n-2].cost && reflectedCost >= simplex[0].cost:
			simplex[n-1] = simplexVertex{x: reflected, cost: reflectedCost}
		case reflectedCost < simplex[0].cost:
			// 反射点优于当前最优顶点，尝试沿同方向扩张
			floats.SubTo(diff, reflected, centroid)
			expanded := make([]float64, dim)
			floats.AddScaledTo(expanded, centroid, nmExpansion, diff)
			if expandedCost := cost(expanded); expandedCost < reflectedCost {
				simplex[n-1] = simplexVertex{x: expanded, cost: expandedCost}
			} else {
				simplex[n-1] = simplexVertex{x: reflected, cost: reflectedCost}
			}
		default:
			// 反射失败，向最差顶点收缩
			floats.SubTo(diff, worst.x, centroid)
			contracted := make([]float64, dim)
			floats.AddScaledTo(contracted, centroid, nmContraction, diff)
			if contractedCost := cost(contracted); contractedCost < worst.cost {
				simplex[n-1] = simplexVertex{x: contracted, cost: contractedCost}
			} else {
				// 收缩也无改善，整个单纯形向最优顶点收缩
				for i := 1; i < n; i++ {
					floats.SubTo(diff, simplex[i].x, simplex[0].x)
					x := make([]float64, dim)
					floats.AddScaledTo(x, simplex[0].x, nmShrink, diff)
					simplex[i] = simplexVertex{x: x, cost: cost(x)}
				}
			}
		}
		sortSimplex(simplex)
	}

	return append([]float64(nil), simplex[0].x...), nil
}

// sortSimplex 按代价值升序排列顶点，最优顶点在前。
func sortSimplex(simplex []simplexVertex) {
	sort.SliceStable(simplex, func(i, j int) bool {
		return simplex[i].cost < simplex[j].cost
	})
}
