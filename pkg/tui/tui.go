// Package tui 提供趋势图表的终端用户界面
// TUI是引擎的驱动层：以固定节奏调用Tick推进采样，并把返回的快照渲染成图表
package tui

import (
	"sync"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"github.com/Kevin-Rudy/pingtrend/pkg/engine"
	"github.com/rivo/tview"
)

// TUI 主界面结构
type TUI struct {
	app       *tview.Application
	rowFlexes []*tview.Flex
	chart     *tview.TextView
	logView   *tview.TextView
	flex      *tview.Flex

	engine    *engine.Engine
	logBuffer *LogBuffer

	// 配置信息
	tuiConfig  *Config
	configPath string // 非空时支持按w保存配置
	styleIndex int    // 当前绘图风格，随引擎设置同步

	// 数据存储
	snapshot   *core.Snapshot
	snapshotMu sync.RWMutex

	// 界面状态
	selectedRow int

	// 控制
	stopChan chan struct{}
	doneChan chan struct{}

	// 测试模式标志
	testMode bool
}

// NewTUI 创建新的TUI实例
// logBuffer应当已经作为LogSink注入引擎，TUI只负责展示其内容
func NewTUI(eng *engine.Engine, logBuffer *LogBuffer, tuiConfig *Config, configPath string) *TUI {
	tui := &TUI{
		app:         tview.NewApplication(),
		chart:       tview.NewTextView(),
		logView:     tview.NewTextView(),
		engine:      eng,
		logBuffer:   logBuffer,
		tuiConfig:   tuiConfig,
		configPath:  configPath,
		styleIndex:  eng.Settings().PlotStyleIndex,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
		testMode:    false,
		selectedRow: -1, // 默认全选状态
	}

	tui.setupUI()
	tui.setupKeyBindings()

	return tui
}

// NewTUIForTest 创建用于测试的TUI实例（不初始化图形组件）
func NewTUIForTest(eng *engine.Engine, logBuffer *LogBuffer, tuiConfig *Config) *TUI {
	return &TUI{
		app:         tview.NewApplication(), // 创建一个应用实例，但不会运行
		engine:      eng,
		logBuffer:   logBuffer,
		tuiConfig:   tuiConfig,
		styleIndex:  eng.Settings().PlotStyleIndex,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
		testMode:    true,
		selectedRow: -1, // 默认全选状态
	}
}

// Run 启动TUI界面
// 启动时立即开启采样会话，之后阻塞直到用户退出
func (t *TUI) Run() error {
	if err := t.engine.Start(time.Now()); err != nil {
		return err
	}

	// 启动驱动goroutine
	go t.driveLoop()

	// 运行应用
	err := t.app.Run()

	// 应用无论因何退出都要让驱动循环停下，否则doneChan永远不会关闭
	t.signalStop()

	// 确保清理工作完成
	<-t.doneChan
	t.engine.Stop()

	return err
}

// Stop 停止TUI界面
func (t *TUI) Stop() {
	// 先发送停止信号，让driveLoop退出
	t.signalStop()

	// 停止应用
	t.app.Stop()
}

// signalStop 关闭停止信号，重复调用是安全的
func (t *TUI) signalStop() {
	select {
	case <-t.stopChan:
		// stopChan已经关闭，避免重复关闭
	default:
		close(t.stopChan)
	}
}

// driveLoop 驱动循环：以固定节奏推进引擎并刷新UI
// 引擎自己决定哪个tick真正触发采样周期，这里只负责持续供给tick
func (t *TUI) driveLoop() {
	defer close(t.doneChan)

	ticker := time.NewTicker(t.tuiConfig.RefreshInterval)
	defer ticker.Stop()

	// 初始UI刷新
	t.forceInitialDraw()

	for {
		select {
		case now := <-ticker.C:
			if snapshot, fired := t.engine.Tick(now); fired {
				t.storeSnapshot(snapshot)
			}
			t.handleUIRefresh()

		case <-t.stopChan:
			return
		}
	}
}

// storeSnapshot 保存最新的序列快照
func (t *TUI) storeSnapshot(snapshot *core.Snapshot) {
	t.snapshotMu.Lock()
	defer t.snapshotMu.Unlock()
	t.snapshot = snapshot
}

// currentSnapshot 读取最新的序列快照
func (t *TUI) currentSnapshot() *core.Snapshot {
	t.snapshotMu.RLock()
	defer t.snapshotMu.RUnlock()
	return t.snapshot
}

// forceInitialDraw 强制初始绘制
func (t *TUI) forceInitialDraw() {
	if !t.testMode && t.app != nil {
		t.app.QueueUpdateDraw(func() {
			// 强制初始绘制
		})
	}
}

// handleUIRefresh 处理UI刷新
func (t *TUI) handleUIRefresh() {
	// 风格索引跟随引擎设置，加载配置后自动生效
	t.styleIndex = t.engine.Settings().PlotStyleIndex

	if !t.testMode && t.app != nil {
		t.safeUIUpdate(func() {
			t.rebuildUI()
			t.updateChart()
			t.updateLogView()
		})
	}
}
