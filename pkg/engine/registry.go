// Package engine - 目标注册表
package engine

import (
	"fmt"
	"net"
	"sync"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// Registry 维护有序的ping目标集合
// 目标以注册顺序排列，顺序位置就是目标的唯一身份
type Registry struct {
	mu      sync.RWMutex
	targets []core.Target
}

// NewRegistry 创建空的目标注册表
func NewRegistry() *Registry {
	return &Registry{}
}

// Add 注册一个新目标
// 地址在此处一次性解析，存储解析后的字面地址，
// 避免探测周期内的瞬时DNS故障影响测量
// 任何失败都不会留下部分更新的状态
func (r *Registry) Add(name, address string) error {
	if name == "" || address == "" {
		return ErrInvalidInput
	}

	addr, err := net.ResolveIPAddr("ip", address)
	if err != nil {
		return fmt.Errorf("%w: '%s': %v", ErrResolution, address, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, core.Target{Name: name, Address: addr.String()})
	return nil
}

// Remove 按顺序位置移除一个目标
func (r *Registry) Remove(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.targets) {
		return fmt.Errorf("目标索引越界: %d", index)
	}

	r.targets = append(r.targets[:index], r.targets[index+1:]...)
	return nil
}

// Clear 移除所有目标
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = nil
}

// Count 返回已注册的目标数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Enumerate 按注册顺序返回所有目标的拷贝
func (r *Registry) Enumerate() []core.Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]core.Target, len(r.targets))
	copy(targets, r.targets)
	return targets
}

// replace 整体替换目标列表，用于配置加载
// 调用方负责保证替换内容已经过验证
func (r *Registry) replace(targets []core.Target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.targets = make([]core.Target, len(targets))
	copy(r.targets, targets)
}
