// Package tui 选项模式支持
package tui

import (
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// Option TUI配置选项函数类型
type Option func(*Config)

// WithRefreshInterval 设置驱动节奏
func WithRefreshInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.RefreshInterval = interval
	}
}

// WithChartSize 设置图表尺寸下限
func WithChartSize(width, height int) Option {
	return func(c *Config) {
		c.MinChartWidth = width
		c.MinChartHeight = height
	}
}

// WithValueBufferRatio 设置值缓冲比例
func WithValueBufferRatio(ratio float64) Option {
	return func(c *Config) {
		c.ValueBufferRatio = ratio
	}
}

// WithMaxLogLines 设置日志窗口保留的行数
func WithMaxLogLines(lines int) Option {
	return func(c *Config) {
		c.MaxLogLines = lines
	}
}

// WithMinSeverity 设置日志显示的最低级别
func WithMinSeverity(level core.Severity) Option {
	return func(c *Config) {
		c.MinSeverity = level
	}
}

// NewConfigWithOptions 使用选项模式创建TUI配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return config
}
