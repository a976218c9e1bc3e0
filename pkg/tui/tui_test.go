package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"github.com/Kevin-Rudy/pingtrend/pkg/engine"
)

// stubProber 测试用探测器，永远返回固定延迟
type stubProber struct{}

func (stubProber) Probe(address string) core.ProbeResult {
	return core.ProbeResult{Kind: core.ResultLatency, LatencyMs: 10}
}

// newTestTUI 构造测试模式的TUI实例
func newTestTUI(t *testing.T) *TUI {
	t.Helper()
	logBuffer := NewLogBuffer(core.SeverityDebug, 100)
	eng := engine.NewEngine(stubProber{}, engine.WithLogSink(logBuffer))
	return NewTUIForTest(eng, logBuffer, DefaultConfig())
}

// sampleSnapshot 构造一个包含两个目标的快照
func sampleSnapshot() *core.Snapshot {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return &core.Snapshot{
		Timestamps: []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute)},
		Values: [][]float64{
			{10, 20, 30},
			{5, math.NaN(), 15},
		},
		Legend: []string{"a [127.0.0.1]", "b [8.8.8.8]"},
	}
}

// TestConfigValidate 测试配置校验
func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero refresh", func(c *Config) { c.RefreshInterval = 0 }},
		{"tiny refresh", func(c *Config) { c.RefreshInterval = time.Millisecond }},
		{"zero chart width", func(c *Config) { c.MinChartWidth = 0 }},
		{"zero chart height", func(c *Config) { c.MinChartHeight = 0 }},
		{"zero max size", func(c *Config) { c.MaxChartSize = 0 }},
		{"negative buffer ratio", func(c *Config) { c.ValueBufferRatio = -0.1 }},
		{"zero log lines", func(c *Config) { c.MaxLogLines = 0 }},
	}

	for _, c := range cases {
		config := DefaultConfig()
		c.mutate(config)
		if err := config.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

// TestConfigOptions 测试选项模式
func TestConfigOptions(t *testing.T) {
	config := NewConfigWithOptions(
		WithRefreshInterval(50*time.Millisecond),
		WithChartSize(30, 10),
		WithMaxLogLines(50),
		WithMinSeverity(core.SeverityDebug),
	)

	if config.RefreshInterval != 50*time.Millisecond {
		t.Errorf("Expected 50ms refresh, got %v", config.RefreshInterval)
	}
	if config.MinChartWidth != 30 || config.MinChartHeight != 10 {
		t.Errorf("Chart size not applied: %d x %d", config.MinChartWidth, config.MinChartHeight)
	}
	if config.MaxLogLines != 50 {
		t.Errorf("Expected 50 log lines, got %d", config.MaxLogLines)
	}
	if config.MinSeverity != core.SeverityDebug {
		t.Errorf("Expected debug severity, got %v", config.MinSeverity)
	}
}

// TestLogBufferFiltering 测试级别过滤
func TestLogBufferFiltering(t *testing.T) {
	buffer := NewLogBuffer(core.SeverityInfo, 10)

	buffer.Emit(core.SeverityDebug, "should be dropped")
	buffer.Emit(core.SeverityInfo, "kept info")
	buffer.Emit(core.SeverityError, "kept error")

	lines := buffer.Lines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines after filtering, got %d", len(lines))
	}

	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "kept info") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") {
		t.Errorf("Unexpected second line: %q", lines[1])
	}
}

// TestLogBufferEviction 测试超过行数上限后从头部淘汰
func TestLogBufferEviction(t *testing.T) {
	buffer := NewLogBuffer(core.SeverityDebug, 3)

	for _, text := range []string{"one", "two", "three", "four"} {
		buffer.Emit(core.SeverityInfo, text)
	}

	lines := buffer.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines after eviction, got %d", len(lines))
	}

	if !strings.Contains(lines[0], "two") {
		t.Errorf("Oldest line should be evicted, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "four") {
		t.Errorf("Newest line should be last, got %q", lines[2])
	}
}

// TestFormatLatency 测试自适应延迟格式化
func TestFormatLatency(t *testing.T) {
	cases := []struct {
		input    float64
		expected string
	}{
		{0.5, "500µs"},
		{12.34, "12.3ms"},
		{1500, "1.50s"},
		{math.NaN(), "N/A"},
	}

	for _, c := range cases {
		if got := formatLatency(c.input); got != c.expected {
			t.Errorf("formatLatency(%f): expected %s, got %s", c.input, c.expected, got)
		}
	}
}

// TestStyleByIndex 测试风格索引与回退
func TestStyleByIndex(t *testing.T) {
	if styleByIndex(0).name != "default" {
		t.Errorf("Expected default style at index 0, got %s", styleByIndex(0).name)
	}
	if styleByIndex(2).name != "dark_background" {
		t.Errorf("Expected dark_background at index 2, got %s", styleByIndex(2).name)
	}

	// 越界索引回退到第一个风格
	if styleByIndex(-1).name != "default" || styleByIndex(99).name != "default" {
		t.Error("Out-of-range style index must fall back to default")
	}

	if StyleCount() != len(plotStyles) {
		t.Errorf("StyleCount mismatch: %d vs %d", StyleCount(), len(plotStyles))
	}
}

// TestTimestampToX 测试时间戳到X坐标的映射
func TestTimestampToX(t *testing.T) {
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)

	if x := timestampToX(start, start, end, 100); x != 0 {
		t.Errorf("Window start should map to 0, got %d", x)
	}
	if x := timestampToX(end, start, end, 100); x != 99 {
		t.Errorf("Window end should map to 99, got %d", x)
	}

	mid := start.Add(30 * time.Second)
	if x := timestampToX(mid, start, end, 100); x < 45 || x > 55 {
		t.Errorf("Window middle mapped to %d", x)
	}

	// 退化窗口（单个样本）映射到右边缘
	if x := timestampToX(start, start, start, 100); x != 99 {
		t.Errorf("Degenerate window should map to the right edge, got %d", x)
	}
}

// TestDrawChartEmpty 测试空快照的提示信息
func TestDrawChartEmpty(t *testing.T) {
	tui := newTestTUI(t)

	if got := tui.drawChart(nil, -1, 80, 20); got != "没有数据" {
		t.Errorf("Unexpected text for nil snapshot: %q", got)
	}

	empty := &core.Snapshot{}
	if got := tui.drawChart(empty, -1, 80, 20); got != "没有数据" {
		t.Errorf("Unexpected text for empty snapshot: %q", got)
	}
}

// TestDrawChartSizeLimits 测试尺寸校验
func TestDrawChartSizeLimits(t *testing.T) {
	tui := newTestTUI(t)
	snapshot := sampleSnapshot()

	if got := tui.drawChart(snapshot, -1, 5, 3); got != "终端尺寸过小" {
		t.Errorf("Expected too-small message, got %q", got)
	}
	if got := tui.drawChart(snapshot, -1, 5000, 20); got != "终端尺寸过大" {
		t.Errorf("Expected too-large message, got %q", got)
	}
}

// TestDrawChartAllMissing 测试全NaN快照的提示信息
func TestDrawChartAllMissing(t *testing.T) {
	tui := newTestTUI(t)
	snapshot := &core.Snapshot{
		Timestamps: []time.Time{time.Now()},
		Values:     [][]float64{{math.NaN()}},
		Legend:     []string{"a [127.0.0.1]"},
	}

	if got := tui.drawChart(snapshot, -1, 80, 20); got != "当前快照内没有有效数据" {
		t.Errorf("Expected no-valid-data message, got %q", got)
	}
}

// TestDrawChartRendersSeries 测试正常快照渲染出盲文曲线和坐标轴
func TestDrawChartRendersSeries(t *testing.T) {
	tui := newTestTUI(t)
	chart := tui.drawChart(sampleSnapshot(), -1, 80, 20)

	// 包含盲文字符
	hasBraille := false
	for _, r := range chart {
		if r >= 0x2800 && r <= 0x28FF {
			hasBraille = true
			break
		}
	}
	if !hasBraille {
		t.Error("Chart should contain braille characters")
	}

	// X轴和时间刻度可见
	if !strings.Contains(chart, "└") {
		t.Error("Chart should contain the X axis")
	}
	if !strings.Contains(chart, "12:00:00") || !strings.Contains(chart, "12:02:00") {
		t.Error("Chart should show the snapshot time range")
	}

	// 输出行数不超过可用高度
	if lines := strings.Split(chart, "\n"); len(lines) > 20 {
		t.Errorf("Chart output exceeds height: %d lines", len(lines))
	}
}

// TestDrawChartSingleTarget 测试单选状态只渲染选中的目标
func TestDrawChartSingleTarget(t *testing.T) {
	tui := newTestTUI(t)
	snapshot := &core.Snapshot{
		Timestamps: []time.Time{time.Now().Add(-time.Minute), time.Now()},
		Values: [][]float64{
			{10, 20},
			{math.NaN(), math.NaN()},
		},
		Legend: []string{"a [127.0.0.1]", "b [8.8.8.8]"},
	}

	// 选中第二个目标（全NaN）时没有可绘制数据
	if got := tui.drawChart(snapshot, 1, 80, 20); got != "当前快照内没有有效数据" {
		t.Errorf("Expected no-valid-data for all-NaN target, got %q", got)
	}

	// 选中第一个目标正常渲染
	if got := tui.drawChart(snapshot, 0, 80, 20); strings.Contains(got, "没有") {
		t.Errorf("First target should render, got %q", got)
	}
}

// TestNavigation 测试选择状态的循环导航
func TestNavigation(t *testing.T) {
	tui := newTestTUI(t)
	tui.storeSnapshot(sampleSnapshot()) // 两个目标

	// 全选 -> 最后一个 -> 第一个 -> 全选
	tui.navigateUp()
	if tui.selectedRow != 1 {
		t.Errorf("Expected row 1 after up from all, got %d", tui.selectedRow)
	}
	tui.navigateUp()
	if tui.selectedRow != 0 {
		t.Errorf("Expected row 0, got %d", tui.selectedRow)
	}
	tui.navigateUp()
	if tui.selectedRow != -1 {
		t.Errorf("Expected all-selected after up from first row, got %d", tui.selectedRow)
	}

	// 全选 -> 第一个 -> 第二个 -> 全选
	tui.navigateDown()
	if tui.selectedRow != 0 {
		t.Errorf("Expected row 0 after down from all, got %d", tui.selectedRow)
	}
	tui.navigateDown()
	tui.navigateDown()
	if tui.selectedRow != -1 {
		t.Errorf("Expected all-selected after down past last row, got %d", tui.selectedRow)
	}
}

// TestDriveLoopStopsOnSignal 测试停止信号总能结束驱动循环
// 即使应用层没有走Stop路径，发出信号后doneChan也必须关闭
func TestDriveLoopStopsOnSignal(t *testing.T) {
	tui := newTestTUI(t)
	go tui.driveLoop()

	tui.signalStop()
	tui.signalStop() // 重复发出信号是安全的

	select {
	case <-tui.doneChan:
	case <-time.After(2 * time.Second):
		t.Fatal("driveLoop did not exit after stop signal")
	}
}

// TestNavigationWithoutData 测试无数据时导航是无操作
func TestNavigationWithoutData(t *testing.T) {
	tui := newTestTUI(t)

	tui.navigateDown()
	tui.navigateUp()
	if tui.selectedRow != -1 {
		t.Errorf("Navigation without data must not move selection, got %d", tui.selectedRow)
	}
}
