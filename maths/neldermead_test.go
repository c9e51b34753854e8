package maths

import (
	"math"
	"testing"
)

// TestNelderMeadQuadratic 二次代价函数收敛到解析最小值。
func TestNelderMeadQuadratic(t *testing.T) {
	cost := func(p []float64) float64 {
		dx := p[0] - 1.0
		dy := p[1] + 2.0
		return dx*dx + dy*dy
	}
	x, err := MinimizeNelderMead(cost, [][]float64{{0, 0}, {4, 0}, {0, 4}}, 1e-12, 1000)
	if err != nil {
		t.Fatalf("最小化失败: %v", err)
	}
	if math.Abs(x[0]-1.0) > 1e-3 || math.Abs(x[1]+2.0) > 1e-3 {
		t.Errorf("最小值位置错误: 期望 (1, -2), 实际 (%v, %v)", x[0], x[1])
	}
}

// TestNelderMeadOneDimensional 一维问题的单纯形只有两个顶点。
func TestNelderMeadOneDimensional(t *testing.T) {
	cost := func(p []float64) float64 {
		d := p[0] - 3.0
		return d * d
	}
	x, err := MinimizeNelderMead(cost, [][]float64{{0}, {1}}, 1e-12, 1000)
	if err != nil {
		t.Fatalf("最小化失败: %v", err)
	}
	if math.Abs(x[0]-3.0) > 1e-3 {
		t.Errorf("最小值位置错误: 期望 3, 实际 %v", x[0])
	}
}

// TestNelderMeadNoIterations 迭代上限为零时返回最优起始顶点。
func TestNelderMeadNoIterations(t *testing.T) {
	cost := func(p []float64) float64 {
		dx := p[0] - 1.0
		dy := p[1] + 2.0
		return dx*dx + dy*dy
	}
	x, err := MinimizeNelderMead(cost, [][]float64{{5, 5}, {1, 1}, {2, 2}}, 1e-12, 0)
	if err != nil {
		t.Fatalf("最小化失败: %v", err)
	}
	if x[0] != 1.0 || x[1] != 1.0 {
		t.Errorf("应返回代价最低的起始顶点 (1, 1), 实际 (%v, %v)", x[0], x[1])
	}
}

// TestNelderMeadBadSimplex 顶点数量或维数不匹配时报错。
func TestNelderMeadBadSimplex(t *testing.T) {
	cost := func(p []float64) float64 { return p[0] }
	if _, err := MinimizeNelderMead(cost, [][]float64{{0, 0}, {1, 1}}, 1e-8, 100); err == nil {
		t.Errorf("二维问题只有两个顶点应当报错")
	}
	if _, err := MinimizeNelderMead(cost, nil, 1e-8, 100); err == nil {
		t.Errorf("空单纯形应当报错")
	}
	if _, err := MinimizeNelderMead(cost, [][]float64{{0, 0}, {1}, {0, 1}}, 1e-8, 100); err == nil {
		t.Errorf("顶点维数不一致应当报错")
	}
}
