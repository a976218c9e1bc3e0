// Package tui 配置定义
package tui

import (
	"errors"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// Config TUI组件的配置结构
type Config struct {
	RefreshInterval  time.Duration // 驱动节奏，每次tick推进引擎并刷新UI
	MinChartWidth    int           // 最小图表宽度
	MinChartHeight   int           // 最小图表高度
	MaxChartSize     int           // 最大图表尺寸（防止极端值）
	ValueBufferRatio float64       // 值缓冲比例
	MaxLogLines      int           // 日志窗口保留的行数
	MinSeverity      core.Severity // 低于该级别的日志不显示
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval:  100 * time.Millisecond, // 默认100ms驱动一次
		MinChartWidth:    20,                     // 最小图表宽度
		MinChartHeight:   5,                      // 最小图表高度
		MaxChartSize:     1000,                   // 最大图表尺寸
		ValueBufferRatio: 0.1,                    // 10%缓冲
		MaxLogLines:      200,                    // 默认保留200行日志
		MinSeverity:      core.SeverityInfo,      // 默认不显示debug
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("UI刷新间隔必须大于0")
	}

	if c.RefreshInterval < 10*time.Millisecond {
		return errors.New("UI刷新间隔不能小于10ms")
	}

	if c.MinChartWidth <= 0 {
		return errors.New("最小图表宽度必须大于0")
	}

	if c.MinChartHeight <= 0 {
		return errors.New("最小图表高度必须大于0")
	}

	if c.MaxChartSize <= 0 {
		return errors.New("最大图表尺寸必须大于0")
	}

	if c.ValueBufferRatio < 0 {
		return errors.New("值缓冲比例不能为负数")
	}

	if c.MaxLogLines <= 0 {
		return errors.New("日志行数必须大于0")
	}

	return nil
}
