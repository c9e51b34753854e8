package types

import "math"

// 物理常量定义
const (
	// VacuumPermeability 真空磁导率 µ0 = 4π*1e-7 H/m（无单位SI数值）。
	// 该数值基于2019年之前的安培定义。新定义下的真空磁导率为
	// 4π * 0.99999999987(16) * 1e-7 H/m，偏差在测量不确定度之内，
	// float64 也无法合理表示，因此继续沿用旧定义。
	VacuumPermeability = 4 * math.Pi * 1e-7
)

// 默认参数常量定义
var (
	SampleStepWidth      = 10.0 // B(H)曲线重采样步长 (A/m)
	SampleTolerance      = 0.02 // 相邻采样点之间磁导率的最大相对变化
	ReferenceFrequency   = 50.0 // Jordan损耗模型参考频率 (Hz)
	ReferenceFluxDensity = 1.5  // Jordan损耗模型参考磁通密度 (T)
	FitTolerance         = 1e-4 // 系数拟合收敛容差 (单纯形代价值的标准差)
	FitMaxIterations     = 200  // 系数拟合最大迭代次数
)
