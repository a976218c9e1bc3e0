package engine

import (
	"errors"
	"testing"
)

// TestRegistryAdd 测试正常注册与地址解析
func TestRegistryAdd(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Add("localhost", "127.0.0.1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Expected 1 target, got %d", registry.Count())
	}

	targets := registry.Enumerate()
	if targets[0].Name != "localhost" || targets[0].Address != "127.0.0.1" {
		t.Errorf("Unexpected target: %+v", targets[0])
	}
}

// TestRegistryAddInvalidInput 测试空名称或空地址被拒绝
func TestRegistryAddInvalidInput(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Add("", "127.0.0.1"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty name, got %v", err)
	}

	if err := registry.Add("name", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty address, got %v", err)
	}

	if registry.Count() != 0 {
		t.Errorf("Failed add must not mutate registry, got %d targets", registry.Count())
	}
}

// TestRegistryAddUnresolvable 测试无法解析的地址被拒绝且不留部分状态
func TestRegistryAddUnresolvable(t *testing.T) {
	registry := NewRegistry()

	err := registry.Add("bad", "definitely-not-a-real-host.invalid")
	if !errors.Is(err, ErrResolution) {
		t.Errorf("Expected ErrResolution, got %v", err)
	}

	if registry.Count() != 0 {
		t.Errorf("Failed add must not mutate registry, got %d targets", registry.Count())
	}
}

// TestRegistryRemove 测试按顺序位置移除
func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry()
	registry.Add("a", "127.0.0.1")
	registry.Add("b", "127.0.0.2")
	registry.Add("c", "127.0.0.3")

	if err := registry.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	targets := registry.Enumerate()
	if len(targets) != 2 || targets[0].Name != "a" || targets[1].Name != "c" {
		t.Errorf("Unexpected targets after remove: %+v", targets)
	}

	// 越界索引被拒绝
	if err := registry.Remove(5); err == nil {
		t.Error("Expected error for out-of-range index")
	}
}

// TestRegistryClear 测试整体清空
func TestRegistryClear(t *testing.T) {
	registry := NewRegistry()
	registry.Add("a", "127.0.0.1")
	registry.Clear()

	if registry.Count() != 0 {
		t.Errorf("Expected empty registry after clear, got %d", registry.Count())
	}
}

// TestRegistryEnumerateIsolation 测试枚举返回的是拷贝
func TestRegistryEnumerateIsolation(t *testing.T) {
	registry := NewRegistry()
	registry.Add("a", "127.0.0.1")

	targets := registry.Enumerate()
	targets[0].Name = "mutated"

	if registry.Enumerate()[0].Name != "a" {
		t.Error("Enumerate must return a copy, mutation leaked into registry")
	}
}

// TestRegistryDuplicateAddresses 测试允许重复地址，目标以顺序位置区分
func TestRegistryDuplicateAddresses(t *testing.T) {
	registry := NewRegistry()
	registry.Add("first", "127.0.0.1")
	registry.Add("second", "127.0.0.1")

	if registry.Count() != 2 {
		t.Errorf("Expected 2 targets with the same address, got %d", registry.Count())
	}
}
