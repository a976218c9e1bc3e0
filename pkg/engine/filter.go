// Package engine - 指数滑动平均滤波器
package engine

// SmoothingFilter 每目标独立的指数滑动平均(EMA)滤波器
// 时间常数小于等于1时退化为直通
type SmoothingFilter struct {
	timeconstant int
	acc          []float64
	seeded       []bool
}

// NewSmoothingFilter 创建滤波器，每个目标一个独立的累加器
func NewSmoothingFilter(timeconstant, targetCount int) *SmoothingFilter {
	return &SmoothingFilter{
		timeconstant: timeconstant,
		acc:          make([]float64, targetCount),
		seeded:       make([]bool, targetCount),
	}
}

// Apply 对单个目标的原始测量值做平滑
// 首次调用直接用原始值播种累加器，避免冷启动时向零偏置
// 播种状态用独立的布尔量跟踪，延迟恰好为0.0的合法样本不会触发重新播种
func (f *SmoothingFilter) Apply(index int, raw float64) float64 {
	if f.timeconstant <= 1 {
		return raw
	}

	if !f.seeded[index] {
		f.seeded[index] = true
		f.acc[index] = raw
		return raw
	}

	tk := float64(f.timeconstant)
	f.acc[index] = (f.acc[index]*(tk-1) + raw) / tk
	return f.acc[index]
}

// Reset 清空所有目标的累加器，会话启动时调用
func (f *SmoothingFilter) Reset() {
	for i := range f.acc {
		f.acc[i] = 0
		f.seeded[i] = false
	}
}
