// Package engine - 有界时间序列缓冲区
package engine

import (
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// SeriesBuffer 有界的先进先出时间序列缓冲区
// 时间戳序列和每个目标的值序列始终保持相同长度；
// 每次追加后立即执行淘汰，长度在任何时刻都不会超过maxSamples
type SeriesBuffer struct {
	maxSamples int
	timestamps []time.Time
	values     [][]float64
	legend     []string
}

// NewSeriesBuffer 创建空缓冲区
// legend在会话启动时计算一次，会话内不随注册表变化
func NewSeriesBuffer(maxSamples int, legend []string) *SeriesBuffer {
	values := make([][]float64, len(legend))
	return &SeriesBuffer{
		maxSamples: maxSamples,
		values:     values,
		legend:     legend,
	}
}

// Append 追加一个周期的时间戳和每目标的值
// 缺失样本（超时/无法解析）用NaN表示，不能用0
// perTarget的长度必须等于目标数量
func (b *SeriesBuffer) Append(timestamp time.Time, perTarget []float64) {
	b.timestamps = append(b.timestamps, timestamp)
	for i := range b.values {
		b.values[i] = append(b.values[i], perTarget[i])
	}

	// 逐条从头部淘汰，严格滑动窗口
	for len(b.timestamps) > b.maxSamples {
		b.timestamps = b.timestamps[1:]
		for i := range b.values {
			b.values[i] = b.values[i][1:]
		}
	}
}

// Len 返回当前样本数
func (b *SeriesBuffer) Len() int {
	return len(b.timestamps)
}

// Snapshot 返回缓冲区的只读视图
// 所有切片都是深拷贝，调用方可以安全地跨goroutine持有
func (b *SeriesBuffer) Snapshot() *core.Snapshot {
	snapshot := &core.Snapshot{
		Timestamps: make([]time.Time, len(b.timestamps)),
		Values:     make([][]float64, len(b.values)),
		Legend:     make([]string, len(b.legend)),
	}
	copy(snapshot.Timestamps, b.timestamps)
	copy(snapshot.Legend, b.legend)
	for i := range b.values {
		snapshot.Values[i] = make([]float64, len(b.values[i]))
		copy(snapshot.Values[i], b.values[i])
	}
	return snapshot
}

// Clear 清空所有序列，图例保持不变
func (b *SeriesBuffer) Clear() {
	b.timestamps = nil
	for i := range b.values {
		b.values[i] = nil
	}
}
