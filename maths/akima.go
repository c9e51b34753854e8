package maths

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// AkimaSpline 分段三次 Akima 样条插值 (Akima, 1970)，
// 支持域外单侧多项式外推。与常见三次样条相比，Akima 样条对局部
// 数据扰动不敏感，不会产生大范围的振荡，适合用作测量数据的插值。
//
// 外推系数 ExtrapLeft / ExtrapRight 是从一次项开始的多项式系数，
// 常数项取对应边界节点的函数值。系数为 nil 的一侧不允许域外求值。
// 外推系数只有一个元素时即为线性外推，元素就是外推斜率。设置了
// 外推的一侧，边界切线取外推多项式在边界处的斜率（即一次项系数），
// 样条与外推曲线 C1 连接。
type AkimaSpline struct {
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
	ExtrapLeft  []float64 `json:"extrap_left,omitempty"`
	ExtrapRight []float64 `json:"extrap_right,omitempty"`

	tangents []float64 // 节点切线，构建时计算
}

// NewAkimaSpline 由节点序列构建样条。x 必须严格递增且与 y 等长，
// 至少需要两个节点。两个节点时退化为线性插值。
// 输入切片会被复制，调用方可以继续使用原切片。
func NewAkimaSpline(x, y, extrapLeft, extrapRight []float64) (*AkimaSpline, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("节点数量不一致: x 有 %d 个, y 有 %d 个", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("构建样条至少需要两个节点, 实际只有 %d 个", len(x))
	}
	for i := 0; i+1 < len(x); i++ {
		if x[i+1] <= x[i] {
			return nil, fmt.Errorf("节点 x 值必须严格递增: x[%d]=%v >= x[%d]=%v", i, x[i], i+1, x[i+1])
		}
	}
	s := &AkimaSpline{
		X:           append([]float64(nil), x...),
		Y:           append([]float64(nil), y...),
		ExtrapLeft:  append([]float64(nil), extrapLeft...),
		ExtrapRight: append([]float64(nil), extrapRight...),
	}
	s.tangents = akimaTangents(s.X, s.Y, s.ExtrapLeft, s.ExtrapRight)
	return s, nil
}

// akimaTangents 计算各节点的切线。设置了外推多项式的一侧用外推
// 斜率作为虚拟区间斜率，使边界切线等于外推斜率；没有外推的一侧
// 按 Akima 原文的做法用二次外推补出虚拟斜率。
func akimaTangents(x, y, extrapLeft, extrapRight []float64) []float64 {
	n := len(x)
	if n == 2 {
		m := (y[1] - y[0]) / (x[1] - x[0])
		return []float64{m, m}
	}

	// me[k] 对应区间斜率 m[k-2]，两端各补两个虚拟斜率
	me := make([]float64, n+3)
	for i := 0; i+1 < n; i++ {
		me[i+2] = (y[i+1] - y[i]) / (x[i+1] - x[i])
	}
	if len(extrapLeft) > 0 {
		me[1] = extrapLeft[0]
		me[0] = extrapLeft[0]
	} else {
		me[1] = 2*me[2] - me[3]
		me[0] = 2*me[1] - me[2]
	}
	if len(extrapRight) > 0 {
		me[n+1] = extrapRight[0]
		me[n+2] = extrapRight[0]
	} else {
		me[n+1] = 2*me[n] - me[n-1]
		me[n+2] = 2*me[n+1] - me[n]
	}

	tangents := make([]float64, n)
	for i := 0; i < n; i++ {
		w1 := math.Abs(me[i+3] - me[i+2])
		w2 := math.Abs(me[i+1] - me[i])
		if w1+w2 == 0 {
			tangents[i] = (me[i+1] + me[i+2]) / 2
		} else {
			tangents[i] = (w1*me[i+1] + w2*me[i+2]) / (w1 + w2)
		}
	}
	return tangents
}

// Eval 在 x 处求值。x 落在域外且对应一侧没有外推系数时返回错误。
func (s *AkimaSpline) Eval(x float64) (float64, error) {
	n := len(s.X)
	if x < s.X[0] {
		if len(s.ExtrapLeft) == 0 {
			return 0, fmt.Errorf("x=%v 小于样条定义域下界 %v 且未设置左侧外推", x, s.X[0])
		}
		return evalPoly(s.Y[0], s.ExtrapLeft, x-s.X[0]), nil
	}
	if x > s.X[n-1] {
		if len(s.ExtrapRight) == 0 {
			return 0, fmt.Errorf("x=%v 大于样条定义域上界 %v 且未设置右侧外推", x, s.X[n-1])
		}
		return evalPoly(s.Y[n-1], s.ExtrapRight, x-s.X[n-1]), nil
	}
	return s.evalInterior(x), nil
}

// EvalInfallible 在全实数域上求值。两侧外推系数均已设置时永不失败，
// 否则域外求值会 panic。构建管线保证模型中的样条总是带有外推系数。
func (s *AkimaSpline) EvalInfallible(x float64) float64 {
	y, err := s.Eval(x)
	if err != nil {
		panic(err)
	}
	return y
}

// evalInterior 在定义域内用三次 Hermite 基函数求值。
func (s *AkimaSpline) evalInterior(x float64) float64 {
	// 定位区间: X[i] <= x <= X[i+1]
	i := sort.SearchFloat64s(s.X, x)
	if i == len(s.X) {
		i--
	}
	if i > 0 && s.X[i] != x {
		i--
	}
	if i == len(s.X)-1 {
		i--
	}

	h := s.X[i+1] - s.X[i]
	u := (x - s.X[i]) / h
	u2 := u * u
	u3 := u2 * u
	return s.Y[i]*(2*u3-3*u2+1) +
		h*s.tangents[i]*(u3-2*u2+u) +
		s.Y[i+1]*(-2*u3+3*u2) +
		h*s.tangents[i+1]*(u3-u2)
}

// evalPoly 求外推多项式 y0 + c1*dx + c2*dx² + ... 的值。
func evalPoly(y0 float64, coeffs []float64, dx float64) float64 {
	y := y0
	p := dx
	for _, c := range coeffs {
		y += c * p
		p *= dx
	}
	return y
}

// UnmarshalJSON 反序列化并重建节点切线。
func (s *AkimaSpline) UnmarshalJSON(data []byte) error {
	var alias struct {
		X           []float64 `json:"x"`
		Y           []float64 `json:"y"`
		ExtrapLeft  []float64 `json:"extrap_left"`
		ExtrapRight []float64 `json:"extrap_right"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	rebuilt, err := NewAkimaSpline(alias.X, alias.Y, alias.ExtrapLeft, alias.ExtrapRight)
	if err != nil {
		return err
	}
	*s = *rebuilt
	return nil
}
