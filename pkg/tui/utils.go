// Package tui 工具函数和辅助类型
package tui

import (
	"fmt"
	"math"
)

// formatLatency 提供自适应的延迟格式化
func formatLatency(latency float64) string {
	if math.IsNaN(latency) {
		return "N/A"
	}

	if latency < 1.0 {
		// 小于1ms，显示为微秒
		return fmt.Sprintf("%.0fµs", latency*1000)
	} else if latency < 1000.0 {
		// 1ms到1000ms之间，显示为毫秒
		return fmt.Sprintf("%.1fms", latency)
	} else {
		// 大于等于1000ms，显示为秒
		return fmt.Sprintf("%.2fs", latency/1000)
	}
}

// targetColor 按目标的顺序位置从当前风格分配颜色
// 顺序位置在会话内固定，颜色因此稳定
func (t *TUI) targetColor(index int) string {
	style := styleByIndex(t.styleIndex)
	if index < 0 {
		return "[white]"
	}
	return style.colors[index%len(style.colors)]
}

// abs 返回整数的绝对值
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lastValue 返回序列中最后一个值，序列为空时返回NaN
func lastValue(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
