//go:build linux

package prober

import (
	"testing"
	"time"
)

// TestRecvTimeoutCountsDown 测试接收超时随已消耗时间递减
// 每次收到无关报文后重新等待的时间只剩截止时刻之前的部分，
// 杂散报文流不能把单次探测拖过配置的总超时
func TestRecvTimeoutCountsDown(t *testing.T) {
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(3 * time.Second)

	remaining, ok := recvTimeout(deadline, start)
	if !ok || remaining != 3*time.Second {
		t.Errorf("Expected full 3s at start, got %v ok=%v", remaining, ok)
	}

	remaining, ok = recvTimeout(deadline, start.Add(2*time.Second))
	if !ok || remaining != time.Second {
		t.Errorf("Expected 1s after 2s elapsed, got %v ok=%v", remaining, ok)
	}
}

// TestRecvTimeoutExpired 测试截止已过时立即判定超时
func TestRecvTimeoutExpired(t *testing.T) {
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(3 * time.Second)

	if _, ok := recvTimeout(deadline, deadline); ok {
		t.Error("Exactly at the deadline must report expired")
	}

	if _, ok := recvTimeout(deadline, start.Add(5*time.Second)); ok {
		t.Error("Past the deadline must report expired")
	}
}
