// Package engine - CSV记录器
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// csvFilenameLayout 会话CSV文件名格式
const csvFilenameLayout = "PingTrend - 20060102 150405.csv"

// CsvRecorder 负责一次采样会话的CSV文件生命周期
// 文件在会话启动时创建，会话停止时无条件关闭
type CsvRecorder struct {
	fd   *os.File
	path string
}

// OpenCsvRecorder 在dir下创建带时间戳的会话文件并立即写入表头
// 表头为 Time,<name1>,<name2>,... 按注册顺序排列
func OpenCsvRecorder(dir string, names []string, now time.Time) (*CsvRecorder, error) {
	path := filepath.Join(dir, now.Format(csvFilenameLayout))

	fd, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("无法在 %s 创建CSV文件: %w", path, err)
	}

	header := "Time," + strings.Join(names, ",")
	if _, err := fd.WriteString(header + "\n"); err != nil {
		fd.Close()
		os.Remove(path)
		return nil, fmt.Errorf("无法写入CSV表头: %w", err)
	}

	return &CsvRecorder{fd: fd, path: path}, nil
}

// AppendRow 写入一行逗号分隔的字段并立即落盘
// 立即同步保证进程异常终止时已有数据不丢失
func (r *CsvRecorder) AppendRow(fields []string) error {
	if r == nil || r.fd == nil {
		return nil
	}

	if _, err := r.fd.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
		return err
	}
	return r.fd.Sync()
}

// Path 返回本会话的CSV文件路径
func (r *CsvRecorder) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Close 关闭文件句柄
// 对已关闭或从未打开的记录器调用是安全的
func (r *CsvRecorder) Close() {
	if r == nil || r.fd == nil {
		return
	}
	r.fd.Close()
	r.fd = nil
}
