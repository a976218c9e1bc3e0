// Package tui 日志缓冲模块
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// LogBuffer 有界的日志行缓冲，实现core.LogSink接口
// 引擎在任意goroutine上Emit，UI刷新时读取，所以内部加锁
type LogBuffer struct {
	mu       sync.Mutex
	minLevel core.Severity
	maxLines int
	lines    []string
}

// NewLogBuffer 创建日志缓冲
func NewLogBuffer(minLevel core.Severity, maxLines int) *LogBuffer {
	return &LogBuffer{
		minLevel: minLevel,
		maxLines: maxLines,
	}
}

// Emit 实现core.LogSink接口
// 低于最低级别的消息被丢弃，超过行数上限时从头部淘汰
func (b *LogBuffer) Emit(level core.Severity, text string) {
	if level < b.minLevel {
		return
	}

	line := fmt.Sprintf("%s  %-5s  %s", time.Now().Format("15:04:05"), level, text)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
	for len(b.lines) > b.maxLines {
		b.lines = b.lines[1:]
	}
}

// Lines 返回当前缓冲内容的拷贝，最新的在末尾
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Render 返回用于TextView的整体文本
func (b *LogBuffer) Render() string {
	return strings.Join(b.Lines(), "\n")
}
