package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestRecorderHeader 测试打开时立即写入表头
func TestRecorderHeader(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 15, 12, 0, 7, 0, time.UTC)

	recorder, err := OpenCsvRecorder(dir, []string{"Gateway", "Google"}, now)
	if err != nil {
		t.Fatalf("OpenCsvRecorder failed: %v", err)
	}
	defer recorder.Close()

	// 文件名带会话时间戳
	expected := filepath.Join(dir, "PingTrend - 20240115 120007.csv")
	if recorder.Path() != expected {
		t.Errorf("Expected path %s, got %s", expected, recorder.Path())
	}

	data, err := os.ReadFile(recorder.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != "Time,Gateway,Google\n" {
		t.Errorf("Unexpected header: %q", string(data))
	}
}

// TestRecorderAppendRow 测试逐行追加并立即落盘
func TestRecorderAppendRow(t *testing.T) {
	dir := t.TempDir()
	recorder, err := OpenCsvRecorder(dir, []string{"a"}, time.Now())
	if err != nil {
		t.Fatalf("OpenCsvRecorder failed: %v", err)
	}
	defer recorder.Close()

	if err := recorder.AppendRow([]string{"2024-01-15 12:00:07.000000", "12.5"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := recorder.AppendRow([]string{"2024-01-15 12:01:00.000000", "No reply"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	// 不关闭直接读取，验证数据已经落盘
	data, err := os.ReadFile(recorder.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), string(data))
	}

	if lines[2] != "2024-01-15 12:01:00.000000,No reply" {
		t.Errorf("Unexpected row: %q", lines[2])
	}
}

// TestRecorderOpenFailure 测试目录不存在时打开失败
func TestRecorderOpenFailure(t *testing.T) {
	_, err := OpenCsvRecorder("/definitely/not/a/real/dir", []string{"a"}, time.Now())
	if err == nil {
		t.Error("Expected error for nonexistent directory")
	}
}

// TestRecorderCloseSafety 测试重复关闭和nil记录器的安全性
func TestRecorderCloseSafety(t *testing.T) {
	dir := t.TempDir()
	recorder, err := OpenCsvRecorder(dir, []string{"a"}, time.Now())
	if err != nil {
		t.Fatalf("OpenCsvRecorder failed: %v", err)
	}

	recorder.Close()
	recorder.Close() // 重复关闭是无操作

	// 关闭后的追加是无操作，不报错
	if err := recorder.AppendRow([]string{"x"}); err != nil {
		t.Errorf("AppendRow after close should be a no-op, got %v", err)
	}

	var nilRecorder *CsvRecorder
	nilRecorder.Close()
	if err := nilRecorder.AppendRow([]string{"x"}); err != nil {
		t.Errorf("nil recorder AppendRow should be a no-op, got %v", err)
	}
}
