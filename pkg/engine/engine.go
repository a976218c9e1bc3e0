// Package engine 实现了tick驱动的采样调度引擎
// 外部驱动层（TUI等）以固定节奏调用Tick，引擎决定何时执行采样周期：
// 探测所有目标、平滑、记录、落盘，然后把可绘制的序列快照交还驱动层
package engine

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// timestampLayout CSV行和日志使用的时间戳格式
const timestampLayout = "2006-01-02 15:04:05.000000"

// session 采样会话的运行时状态，Start创建，Stop销毁
type session struct {
	interval time.Duration
	next     time.Time // 零值表示下一个tick立即触发首个周期
	targets  []core.Target
	buffer   *SeriesBuffer
	filter   *SmoothingFilter
	recorder *CsvRecorder
	archive  *Archive
}

// Engine 调度引擎，Idle/Running两态状态机
// 会话未激活时为Idle；配置和目标的修改只在Idle状态下允许
type Engine struct {
	prober   core.Prober
	log      core.LogSink
	registry *Registry

	mu       sync.Mutex
	settings Settings
	session  *session // nil表示Idle
}

// NewEngine 创建引擎实例
func NewEngine(prober core.Prober, opts ...Option) *Engine {
	e := &Engine{
		prober:   prober,
		log:      core.NopSink{},
		registry: NewRegistry(),
		settings: DefaultSettings(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Running 报告引擎是否处于采样会话中
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Settings 返回当前运行设置的拷贝
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetSettings 替换运行设置，会话进行中拒绝
func (e *Engine) SetSettings(settings Settings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}
	e.settings = settings
	return nil
}

// AddTarget 注册一个新目标，会话进行中拒绝
func (e *Engine) AddTarget(name, address string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}
	if err := e.registry.Add(name, address); err != nil {
		e.log.Emit(core.SeverityError, err.Error())
		return err
	}
	return nil
}

// RemoveTarget 按顺序位置移除目标，会话进行中拒绝
func (e *Engine) RemoveTarget(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}
	return e.registry.Remove(index)
}

// ClearTargets 清空注册表，会话进行中拒绝
func (e *Engine) ClearTargets() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}
	e.registry.Clear()
	return nil
}

// Targets 按注册顺序返回所有目标
func (e *Engine) Targets() []core.Target {
	return e.registry.Enumerate()
}

// Start 从Idle切换到Running
// 验证失败、注册表为空或文件打开失败都会中止启动，不留下任何部分状态
// 首个周期不等待间隔对齐：下一个tick立即触发
func (e *Engine) Start(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}

	if err := e.settings.Validate(); err != nil {
		e.log.Emit(core.SeverityError, err.Error())
		return err
	}

	targets := e.registry.Enumerate()
	if len(targets) == 0 {
		e.log.Emit(core.SeverityError, ErrNoTargets.Error())
		return ErrNoTargets
	}

	// 会话期间固定的图例和表头
	legend := make([]string, len(targets))
	names := make([]string, len(targets))
	for i, target := range targets {
		legend[i] = target.Legend()
		names[i] = target.Name
	}

	var recorder *CsvRecorder
	if e.settings.WriteCSV {
		var err error
		recorder, err = OpenCsvRecorder(e.settings.OutputPath, names, now)
		if err != nil {
			e.log.Emit(core.SeverityError, err.Error())
			return err
		}
	}

	var archive *Archive
	if e.settings.ArchivePath != "" {
		var err error
		archive, err = OpenArchive(e.settings.ArchivePath)
		if err != nil {
			recorder.Close()
			e.log.Emit(core.SeverityError, err.Error())
			return err
		}
	}

	e.session = &session{
		interval: time.Duration(e.settings.IntervalSeconds * float64(time.Second)),
		targets:  targets,
		buffer:   NewSeriesBuffer(e.settings.MaxSamples, legend),
		filter:   NewSmoothingFilter(e.settings.FilterTimeconstant, len(targets)),
		recorder: recorder,
		archive:  archive,
	}
	return nil
}

// Stop 从Running切换到Idle
// 幂等：对Idle引擎调用是无操作；任何已打开的文件句柄都会被无条件关闭
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}

	e.session.recorder.Close()
	e.session.archive.Close()
	e.session = nil
}

// Tick 由驱动层以固定节奏调用（约100ms一次）
// 未到触发时刻时是无操作；到达后执行一个完整的采样周期并返回序列快照
// 调用方必须等待上一次Tick返回后再调用，引擎不支持重入
func (e *Engine) Tick(now time.Time) (*core.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || now.Before(s.next) {
		return nil, false
	}

	// 后续周期对齐到间隔的整数倍时刻
	s.next = nextFireTime(now, s.interval)

	results := e.probeAll(s.targets)

	values := make([]float64, len(s.targets))
	fields := make([]string, 0, len(s.targets)+1)
	fields = append(fields, now.Format(timestampLayout))

	for i, target := range s.targets {
		switch results[i].Kind {
		case core.ResultLatency:
			smoothed := s.filter.Apply(i, results[i].LatencyMs)
			values[i] = smoothed
			text := strconv.FormatFloat(smoothed, 'f', -1, 64)
			fields = append(fields, text)
			e.log.Emit(core.SeverityDebug, fmt.Sprintf("%s: %s %sms", target.Name, target.Address, text))

		case core.ResultTimeout:
			values[i] = math.NaN()
			fields = append(fields, "No reply")
			e.log.Emit(core.SeverityInfo, fmt.Sprintf("%s: Reply from %s timed out", target.Name, target.Address))

		case core.ResultResolutionFailure:
			values[i] = math.NaN()
			fields = append(fields, "Cannot resolve")
			e.log.Emit(core.SeverityInfo, fmt.Sprintf("%s: Could not resolve %s", target.Name, target.Address))
		}
	}

	s.buffer.Append(now, values)

	// 文件写入失败不是致命错误：记录日志后放弃文件，会话继续
	if s.recorder != nil {
		if err := s.recorder.AppendRow(fields); err != nil {
			e.log.Emit(core.SeverityError, fmt.Sprintf("CSV写入失败，本会话不再记录文件: %v", err))
			s.recorder.Close()
			s.recorder = nil
		}
	}

	if s.archive != nil {
		if err := s.archive.RecordCycle(now, s.targets, values); err != nil {
			e.log.Emit(core.SeverityError, fmt.Sprintf("归档写入失败，本会话不再归档: %v", err))
			s.archive.Close()
			s.archive = nil
		}
	}

	return s.buffer.Snapshot(), true
}

// probeAll 并发探测所有目标并等待全部完成
// 单个目标的失败编码在各自的结果里，互不影响
func (e *Engine) probeAll(targets []core.Target) []core.ProbeResult {
	results := make([]core.ProbeResult, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(index int, address string) {
			defer wg.Done()
			results[index] = e.prober.Probe(address)
		}(i, target.Address)
	}
	wg.Wait()

	return results
}

// nextFireTime 计算下一个触发时刻
// 未来周期吸附到间隔的整数倍墙钟时刻，例如60秒间隔对齐到整分
func nextFireTime(now time.Time, interval time.Duration) time.Time {
	rem := time.Duration(now.UnixNano()) % interval
	return now.Add(interval - rem)
}

// SaveConfig 把当前设置和目标列表编码为配置文档
func (e *Engine) SaveConfig() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := SessionConfig{
		IntervalSeconds:    e.settings.IntervalSeconds,
		FilterTimeconstant: e.settings.FilterTimeconstant,
		MaxSamples:         e.settings.MaxSamples,
		OutputPath:         e.settings.OutputPath,
		PlotStyleIndex:     e.settings.PlotStyleIndex,
		Targets:            e.registry.Enumerate(),
	}
	return SerializeConfig(&cfg)
}

// LoadConfig 解析配置文档并整体替换当前设置和注册表
// 解析失败时现有状态不受任何影响；会话进行中拒绝加载
// 文档中的地址是保存时已解析的字面值，按原样接受
func (e *Engine) LoadConfig(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrSessionRunning
	}

	cfg, err := DeserializeConfig(data)
	if err != nil {
		e.log.Emit(core.SeverityError, err.Error())
		return err
	}

	e.settings.IntervalSeconds = cfg.IntervalSeconds
	e.settings.FilterTimeconstant = cfg.FilterTimeconstant
	e.settings.MaxSamples = cfg.MaxSamples
	e.settings.OutputPath = cfg.OutputPath
	e.settings.PlotStyleIndex = cfg.PlotStyleIndex
	e.registry.replace(cfg.Targets)
	return nil
}
