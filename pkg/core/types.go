// Package core 定义了监控框架的核心接口和数据结构
// 这些接口保证了驱动层（TUI、CLI等）与采样引擎的完全解耦
package core

import (
	"fmt"
	"time"
)

// Target 表示一个被监控的ping目标
// Address保存注册时一次性解析得到的字面地址，探测周期内不再重复解析
type Target struct {
	Name    string // 目标名称，用于图例和CSV表头
	Address string // 解析后的目标地址
}

// Legend 返回目标的图例标签，会话启动时计算一次并在会话内保持不变
func (t Target) Legend() string {
	return fmt.Sprintf("%s [%s]", t.Name, t.Address)
}

// ResultKind 表示单次探测结果的分类
type ResultKind int

const (
	ResultLatency           ResultKind = iota // 成功收到回复
	ResultTimeout                             // 目标不可达或回复超时
	ResultResolutionFailure                   // 目标地址无法解析
)

// ProbeResult 表示单次ping操作的原子结果
// 普通的网络故障编码在结果中，而不是作为error向上传播
type ProbeResult struct {
	Kind      ResultKind // 结果分类
	LatencyMs float64    // 延迟(ms)，仅当Kind为ResultLatency时有效
}

// Prober 定义了单次往返测量的标准接口
// 任何探测实现（原始套接字、DGRAM套接字、系统API等）都应该实现这个接口
type Prober interface {
	// Probe 对单个地址执行一次阻塞的往返测量
	// 超时和解析失败编码在返回值中，实现不得panic
	Probe(address string) ProbeResult
}

// Snapshot 表示一个采样周期结束后的可绘制数据视图
// 所有切片都是深拷贝，调用方可以安全地跨goroutine持有
type Snapshot struct {
	Timestamps []time.Time // 每个周期的时间戳
	Values     [][]float64 // 每个目标一条延迟序列，NaN表示缺失样本
	Legend     []string    // 每个目标的图例标签
}

// Severity 表示日志消息的严重级别
type Severity int

const (
	SeverityDebug Severity = iota // 每周期的正常测量值
	SeverityInfo                  // 超时、解析失败等周期性事件
	SeverityError                 // 配置错误、文件写入失败等
)

// String 返回级别的文本表示，用于日志行格式化
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogSink 定义了带严重级别的日志出口
// 引擎通过注入的sink输出周期事件，避免进程级的全局日志状态
type LogSink interface {
	Emit(level Severity, text string)
}

// NopSink 丢弃所有日志消息，用于测试和未配置sink时的默认值
type NopSink struct{}

// Emit 实现LogSink接口
func (NopSink) Emit(level Severity, text string) {}
