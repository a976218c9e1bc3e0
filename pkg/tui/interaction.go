// Package tui 交互控制模块
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"github.com/gdamore/tcell/v2"
)

// 导航事件频率控制 - 包级私有变量
var (
	navigationEventCounter   int                      // 事件计数器
	navigationEventThreshold = 5                      // 5次事件后休息
	navigationRestDuration   = 100 * time.Millisecond // 休息时长
	isNavigationResting      bool                     // 是否在休息状态
	lastNavigationEventTime  time.Time                // 最后一次事件时间
)

// shouldHandleNavigationEvent 判断是否应该处理导航事件
func shouldHandleNavigationEvent() bool {
	now := time.Now()

	// 如果正在休息中，检查是否休息够了
	if isNavigationResting {
		if now.Sub(lastNavigationEventTime) >= navigationRestDuration {
			// 休息够了，重置状态
			isNavigationResting = false
			navigationEventCounter = 0
			return true
		}
		// 还在休息，忽略事件
		return false
	}

	// 不在休息状态，可以处理
	return true
}

// recordNavigationEvent 记录导航事件
func recordNavigationEvent() {
	navigationEventCounter++
	lastNavigationEventTime = time.Now()

	// 检查是否达到阈值
	if navigationEventCounter >= navigationEventThreshold {
		isNavigationResting = true
	}
}

// setupKeyBindings 设置键盘绑定
func (t *TUI) setupKeyBindings() {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				t.Stop()
				return nil
			case 's', 'S':
				t.toggleSession()
				return nil
			case 'w', 'W':
				t.saveConfigFile()
				return nil
			}
		case tcell.KeyUp:
			// 添加频率控制检查
			if shouldHandleNavigationEvent() {
				t.navigateUp()
				recordNavigationEvent()
			}
			return nil
		case tcell.KeyDown:
			// 添加频率控制检查
			if shouldHandleNavigationEvent() {
				t.navigateDown()
				recordNavigationEvent()
			}
			return nil
		}
		return event
	})
}

// rowCount 返回当前可选择的目标行数
func (t *TUI) rowCount() int {
	snapshot := t.currentSnapshot()
	if snapshot == nil {
		return 0
	}
	return len(snapshot.Legend)
}

// navigateUp 向上导航
func (t *TUI) navigateUp() {
	count := t.rowCount()
	if count == 0 {
		return
	}

	if t.selectedRow == -1 {
		// 从全选状态按上键，选择最后一个条目
		t.selectedRow = count - 1
	} else if t.selectedRow > 0 {
		// 向上移动到上一个条目
		t.selectedRow--
	} else {
		// 在第一个条目时按上键，返回全选状态
		t.selectedRow = -1
	}

	if !t.testMode {
		t.updateSelection()
		t.updateChart()
	}
}

// navigateDown 向下导航
func (t *TUI) navigateDown() {
	count := t.rowCount()
	if count == 0 {
		return
	}

	if t.selectedRow == -1 {
		// 从全选状态按下键，选择第一个条目
		t.selectedRow = 0
	} else if t.selectedRow < count-1 {
		// 向下移动到下一个条目
		t.selectedRow++
	} else {
		// 在最后一个条目时按下键，返回全选状态
		t.selectedRow = -1
	}

	if !t.testMode {
		t.updateSelection()
		t.updateChart()
	}
}

// toggleSession 启动或停止采样会话
// 目标和设置的修改只在停止状态下允许，所以这里是运行期唯一的状态开关
func (t *TUI) toggleSession() {
	if t.engine.Running() {
		t.engine.Stop()
		t.logBuffer.Emit(core.SeverityInfo, "采样会话已停止")
		return
	}

	if err := t.engine.Start(time.Now()); err != nil {
		// 启动失败的原因已经由引擎写入日志
		return
	}
	t.logBuffer.Emit(core.SeverityInfo, "采样会话已启动")
}

// saveConfigFile 把当前设置和目标保存到配置文件
func (t *TUI) saveConfigFile() {
	if t.configPath == "" {
		t.logBuffer.Emit(core.SeverityError, "未指定配置文件路径，无法保存")
		return
	}

	data, err := t.engine.SaveConfig()
	if err != nil {
		t.logBuffer.Emit(core.SeverityError, fmt.Sprintf("配置序列化失败: %v", err))
		return
	}

	if err := os.WriteFile(t.configPath, data, 0644); err != nil {
		t.logBuffer.Emit(core.SeverityError, fmt.Sprintf("配置写入失败: %v", err))
		return
	}

	t.logBuffer.Emit(core.SeverityInfo, fmt.Sprintf("配置已保存到 %s", t.configPath))
}
