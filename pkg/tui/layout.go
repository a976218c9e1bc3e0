// Package tui 布局管理模块
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// setupUI 设置用户界面布局
func (t *TUI) setupUI() {
	// 设置图表属性
	t.chart.SetWordWrap(false)
	t.chart.SetDynamicColors(true)
	t.chart.SetText("[yellow]正在初始化，等待首个采样周期...[white]")

	// 日志窗口显示引擎事件
	t.logView.SetWordWrap(false)
	t.logView.SetDynamicColors(false)
	t.logView.SetBorder(true)
	t.logView.SetTitle(" 日志 ")

	// 创建主垂直布局
	t.flex = tview.NewFlex()
	t.flex.SetDirection(tview.FlexRow)

	// 添加初始的等待信息行
	waitingInfo := tview.NewTextView()
	waitingInfo.SetText("[green]PingTrend 已启动[white] - [yellow]等待首个采样周期...[white]")
	waitingInfo.SetDynamicColors(true)
	waitingInfo.SetTextAlign(tview.AlignCenter)

	// 立即添加等待信息、图表和日志窗口到布局中
	t.flex.AddItem(waitingInfo, 1, 0, false)
	t.flex.AddItem(t.chart, 0, 1, false)
	t.flex.AddItem(t.logView, 8, 0, false)

	t.app.SetRoot(t.flex, true)
}

// rebuildUI 重建UI布局
func (t *TUI) rebuildUI() {
	if t.testMode {
		return
	}

	snapshot := t.currentSnapshot()

	// 清空主布局
	t.flex.Clear()
	t.rowFlexes = nil

	// 状态行：会话状态和操作提示
	t.flex.AddItem(t.buildStatusRow(), 1, 0, false)

	if snapshot == nil || len(snapshot.Legend) == 0 {
		// 没有数据时，显示等待界面
		waitingInfo := tview.NewTextView()
		waitingInfo.SetText("[green]PingTrend 已启动[white] - [yellow]等待首个采样周期...[white]")
		waitingInfo.SetDynamicColors(true)
		waitingInfo.SetTextAlign(tview.AlignCenter)

		t.flex.AddItem(waitingInfo, 1, 0, false)
		t.flex.AddItem(t.chart, 0, 1, false)
		t.flex.AddItem(t.logView, 8, 0, false)
		return
	}

	// 为每个目标创建一行：图例和最近的平滑值
	t.rowFlexes = make([]*tview.Flex, 0, len(snapshot.Legend))
	for i, legend := range snapshot.Legend {
		rowFlex := t.createTargetRow(i, legend, lastValue(snapshot.Values[i]))
		t.flex.AddItem(rowFlex, 1, 0, false)
		t.rowFlexes = append(t.rowFlexes, rowFlex)
	}

	// 图表占据所有剩余空间，日志窗口固定在底部
	t.flex.AddItem(t.chart, 0, 1, false)
	t.flex.AddItem(t.logView, 8, 0, false)

	// 确保选择状态正确
	if t.selectedRow >= len(snapshot.Legend) {
		t.selectedRow = len(snapshot.Legend) - 1
	}
	t.updateSelection()
}

// buildStatusRow 创建顶部状态行
func (t *TUI) buildStatusRow() *tview.TextView {
	settings := t.engine.Settings()

	state := "[red]已停止[white]"
	if t.engine.Running() {
		state = "[green]运行中[white]"
	}

	status := tview.NewTextView()
	status.SetDynamicColors(true)
	status.SetText(fmt.Sprintf(
		"%s  间隔 %gs  滤波 %d  样本上限 %d  风格 %s  [gray](s 启停  ↑/↓ 选择  w 保存配置  q 退出)[white]",
		state,
		settings.IntervalSeconds,
		settings.FilterTimeconstant,
		settings.MaxSamples,
		StyleName(t.styleIndex),
	))
	return status
}

// createTargetRow 创建目标数据行
func (t *TUI) createTargetRow(index int, legend string, latest float64) *tview.Flex {
	rowFlex := tview.NewFlex()
	rowFlex.SetDirection(tview.FlexColumn)

	// 目标的颜色与图表曲线一致
	color := t.targetColor(index)

	// 第一列：目标图例（带颜色）
	legendText := tview.NewTextView()
	legendText.SetText(fmt.Sprintf("%s%-40s[white]", color, legend))
	legendText.SetDynamicColors(true)
	legendText.SetTextAlign(tview.AlignLeft)
	rowFlex.AddItem(legendText, 0, 3, false)

	// 第二列：最近一次的平滑延迟
	valueText := tview.NewTextView()
	valueText.SetText(fmt.Sprintf("%10s", formatLatency(latest)))
	valueText.SetTextAlign(tview.AlignRight)
	valueText.SetTextColor(tcell.ColorWhite)
	rowFlex.AddItem(valueText, 0, 1, false)

	return rowFlex
}

// updateChart 更新图表显示
func (t *TUI) updateChart() {
	if t.testMode || t.chart == nil {
		return
	}

	snapshot := t.currentSnapshot()
	if snapshot == nil {
		return
	}

	// 获取图表视图的实际可绘制尺寸
	_, _, width, height := t.chart.GetInnerRect()

	// 确保有合理的最小尺寸
	if width < 20 {
		width = 80
	}
	if height < 10 {
		height = 15
	}

	t.chart.SetText(t.drawChart(snapshot, t.selectedRow, width, height))
}

// updateLogView 更新日志窗口
func (t *TUI) updateLogView() {
	if t.testMode || t.logView == nil {
		return
	}

	t.logView.SetText(t.logBuffer.Render())
	t.logView.ScrollToEnd()
}

// updateSelection 更新行选择状态
func (t *TUI) updateSelection() {
	if t.testMode || len(t.rowFlexes) == 0 {
		return
	}

	for i, rowFlex := range t.rowFlexes {
		if t.selectedRow == i {
			// 高亮选中的数据行的所有子项
			for j := 0; j < rowFlex.GetItemCount(); j++ {
				if textView, ok := rowFlex.GetItem(j).(*tview.TextView); ok {
					textView.SetBackgroundColor(tcell.ColorDarkCyan)
				}
			}
		} else {
			// 重置未选中数据行的所有子项背景色
			for j := 0; j < rowFlex.GetItemCount(); j++ {
				if textView, ok := rowFlex.GetItem(j).(*tview.TextView); ok {
					textView.SetBackgroundColor(tcell.ColorDefault)
				}
			}
		}
	}
}

// safeUIUpdate 安全地执行UI更新操作
func (t *TUI) safeUIUpdate(updateFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			// 如果应用已经停止，忽略panic
		}
	}()
	t.app.QueueUpdateDraw(updateFunc)
}
