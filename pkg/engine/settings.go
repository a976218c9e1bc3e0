// Package engine - 引擎运行设置
package engine

// Settings 引擎的当前运行设置
// 前五个字段随配置文档持久化；WriteCSV和ArchivePath
// 是每次运行时由驱动层指定的开关，历史版本从不持久化它们
type Settings struct {
	IntervalSeconds    float64 // ping间隔（秒）
	FilterTimeconstant int     // EMA滤波时间常数，<=1表示不平滑
	MaxSamples         int     // 绘图缓冲区的最大样本数
	OutputPath         string  // CSV输出目录
	PlotStyleIndex     int     // 绘图样式索引
	WriteCSV           bool    // 是否写CSV文件
	ArchivePath        string  // sqlite归档路径，空表示不归档
}

// DefaultSettings 返回默认设置
func DefaultSettings() Settings {
	return Settings{
		IntervalSeconds:    60,  // 默认每分钟一个周期
		FilterTimeconstant: 1,   // 默认不平滑
		MaxSamples:         100, // 默认100个绘图样本
		OutputPath:         ".",
		PlotStyleIndex:     2, // 默认dark_background
	}
}

// Validate 验证设置的合理性
// 每种违规返回独立的哨兵错误，便于调用方精确报告
func (s Settings) Validate() error {
	if s.IntervalSeconds <= 0 {
		return ErrBadInterval
	}
	if s.MaxSamples < 0 {
		return ErrBadSampleCount
	}
	if s.FilterTimeconstant < 0 {
		return ErrBadTimeconstant
	}
	return nil
}
