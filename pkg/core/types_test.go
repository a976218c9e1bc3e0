package core

import (
	"math"
	"testing"
)

// TestTargetLegend 测试图例标签的格式
func TestTargetLegend(t *testing.T) {
	target := Target{Name: "Google", Address: "8.8.8.8"}

	if legend := target.Legend(); legend != "Google [8.8.8.8]" {
		t.Errorf("Expected legend 'Google [8.8.8.8]', got '%s'", legend)
	}
}

// TestProbeResult 测试ProbeResult结构体
func TestProbeResult(t *testing.T) {
	// 测试正常延迟
	result1 := ProbeResult{Kind: ResultLatency, LatencyMs: 12.5}

	if result1.Kind != ResultLatency {
		t.Errorf("Expected kind ResultLatency, got %d", result1.Kind)
	}

	if result1.LatencyMs != 12.5 {
		t.Errorf("Expected latency 12.5, got %f", result1.LatencyMs)
	}

	// 超时结果不携带有效延迟
	result2 := ProbeResult{Kind: ResultTimeout, LatencyMs: math.NaN()}

	if result2.Kind != ResultTimeout {
		t.Errorf("Expected kind ResultTimeout, got %d", result2.Kind)
	}

	if !math.IsNaN(result2.LatencyMs) {
		t.Errorf("Expected latency to be NaN, got %f", result2.LatencyMs)
	}
}

// TestSeverityString 测试严重级别的文本表示
func TestSeverityString(t *testing.T) {
	cases := []struct {
		level    Severity
		expected string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityError, "ERROR"},
		{Severity(99), "UNKNOWN"},
	}

	for _, c := range cases {
		if got := c.level.String(); got != c.expected {
			t.Errorf("Expected '%s', got '%s'", c.expected, got)
		}
	}
}

// TestNopSink 测试NopSink实现LogSink接口且不会panic
func TestNopSink(t *testing.T) {
	var sink LogSink = NopSink{}
	sink.Emit(SeverityDebug, "discarded")
	sink.Emit(SeverityError, "also discarded")
}
