// Package prober 配置定义
package prober

import (
	"errors"
	"time"
)

// Config prober组件的配置结构
type Config struct {
	IPVersion int           // IP版本，4或6
	Timeout   time.Duration // 单次探测的超时时间
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		IPVersion: 4,               // 默认IPv4
		Timeout:   3 * time.Second, // 默认3秒超时
	}
}

// GetIPProtocol 获取IP协议字符串，用于网络操作
func (c *Config) GetIPProtocol() string {
	if c.IPVersion == 6 {
		return "ip6"
	}
	return "ip4"
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.IPVersion != 4 && c.IPVersion != 6 {
		return errors.New("IP版本必须是4或6")
	}

	if c.Timeout <= 0 {
		return errors.New("超时时间必须大于0")
	}

	if c.Timeout < 100*time.Millisecond {
		return errors.New("超时时间不能小于100ms")
	}

	return nil
}
