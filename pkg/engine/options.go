// Package engine 选项模式支持
package engine

import (
	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// Option 配置选项函数类型
type Option func(*Engine)

// WithLogSink 设置日志出口
func WithLogSink(sink core.LogSink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.log = sink
		}
	}
}

// WithSettings 设置初始运行设置
func WithSettings(settings Settings) Option {
	return func(e *Engine) {
		e.settings = settings
	}
}

// WithRegistry 注入预先填充的目标注册表
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}
