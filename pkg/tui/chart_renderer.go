// Package tui 图表渲染模块
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// brailleCell 定义盲文字符的cell结构
type brailleCell struct {
	char  int
	color string
}

// 盲文点阵的映射关系 (2x4 grid)
var brailleDotMap = [4][2]int{
	{0b00000001, 0b00001000}, // (y:0, x:0), (y:0, x:1)
	{0b00000010, 0b00010000}, // (y:1, x:0), (y:1, x:1)
	{0b00000100, 0b00100000}, // (y:2, x:0), (y:2, x:1)
	{0b01000000, 0b10000000}, // (y:3, x:0), (y:3, x:1)
}

// validateChartSize 验证图表尺寸是否合理
func (t *TUI) validateChartSize(width, height int) string {
	if height < t.tuiConfig.MinChartHeight || width < t.tuiConfig.MinChartWidth {
		return "终端尺寸过小"
	}
	if width > t.tuiConfig.MaxChartSize || height > t.tuiConfig.MaxChartSize {
		return "终端尺寸过大"
	}
	return ""
}

// calculateValueRange 计算快照里所有参与绘制序列的值范围
// NaN是缺失样本的标记，不参与范围计算
func (t *TUI) calculateValueRange(snapshot *core.Snapshot, selected int) (minVal, maxVal, valueRange float64, errMsg string) {
	var allValidValues []float64
	for i, series := range snapshot.Values {
		if selected >= 0 && i != selected {
			continue
		}
		for _, v := range series {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				allValidValues = append(allValidValues, v)
			}
		}
	}

	if len(allValidValues) == 0 {
		return 0, 0, 0, "当前快照内没有有效数据"
	}

	minVal, maxVal = allValidValues[0], allValidValues[0]
	for _, v := range allValidValues {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	// 如果所有值都一样，特殊处理
	if maxVal == minVal {
		maxVal++
		minVal--
	}

	// 采用缓冲算法
	maxVal = maxVal + maxVal*t.tuiConfig.ValueBufferRatio
	minVal = minVal - minVal*t.tuiConfig.ValueBufferRatio
	if minVal < 0 {
		minVal = 0
	}

	valueRange = maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	return minVal, maxVal, valueRange, ""
}

// timestampToX 把时间戳映射到高分辨率X坐标
func timestampToX(ts, windowStart, windowEnd time.Time, resolution int) int {
	span := windowEnd.Sub(windowStart)
	if span <= 0 {
		return resolution - 1
	}
	ratio := float64(ts.Sub(windowStart)) / float64(span)
	x := int(ratio * float64(resolution-1))
	if x < 0 {
		x = 0
	}
	if x >= resolution {
		x = resolution - 1
	}
	return x
}

// drawChart 基于序列快照绘制图表
// selected为-1时绘制所有目标，否则只绘制指定顺序位置的目标
func (t *TUI) drawChart(snapshot *core.Snapshot, selected, width, height int) string {
	if snapshot == nil || len(snapshot.Timestamps) == 0 {
		return "没有数据"
	}

	// 检查图表尺寸是否合理
	if sizeErr := t.validateChartSize(width, height); sizeErr != "" {
		return sizeErr
	}

	// 窗口就是快照覆盖的时间范围
	windowStart := snapshot.Timestamps[0]
	windowEnd := snapshot.Timestamps[len(snapshot.Timestamps)-1]

	// 计算值范围
	minVal, maxVal, valueRange, errMsg := t.calculateValueRange(snapshot, selected)
	if errMsg != "" {
		return errMsg
	}

	// 动态计算Y轴标签宽度
	topLabel := formatLatency(maxVal)
	bottomLabel := formatLatency(minVal)
	maxLabelLen := len(topLabel)
	if len(bottomLabel) > maxLabelLen {
		maxLabelLen = len(bottomLabel)
	}
	yAxisLabelWidth := maxLabelLen + 2 // +2 为│分隔符和右侧空格留出缓冲

	// 准备画布尺寸
	chartBodyHeight := height - 2 // 为X轴和时间刻度留出2行空间
	chartWidth := width - yAxisLabelWidth

	if chartBodyHeight <= 0 || chartWidth <= 0 {
		return "可绘制区域过小"
	}

	// 创建盲文画布
	canvas := make([][]brailleCell, chartWidth)
	for i := range canvas {
		canvas[i] = make([]brailleCell, chartBodyHeight)
	}

	// 绘制各个目标序列
	for targetIndex, series := range snapshot.Values {
		if selected >= 0 && targetIndex != selected {
			continue
		}

		color := t.targetColor(targetIndex)
		var lastValidX, lastValidY int = -1, -1

		for sampleIndex, value := range series {
			// 缺失样本在曲线上留出缺口，不画成0
			if math.IsNaN(value) || math.IsInf(value, 0) {
				lastValidX, lastValidY = -1, -1
				continue
			}

			currX := timestampToX(snapshot.Timestamps[sampleIndex], windowStart, windowEnd, chartWidth*2)

			normalized := (value - minVal) / valueRange
			currY := int((1.0 - normalized) * float64(chartBodyHeight*4-1))
			if currY < 0 {
				currY = 0
			} else if currY >= chartBodyHeight*4 {
				currY = chartBodyHeight*4 - 1
			}

			if lastValidX != -1 && lastValidY != -1 {
				drawBrailleLine(canvas, lastValidX, lastValidY, currX, currY, chartBodyHeight*4, chartWidth*2, color)
			} else {
				// 线条的第一个点直接在画布上标记
				canvasX := currX / 2
				canvasY := currY / 4
				subY := currY % 4
				subX := currX % 2

				if canvasX >= 0 && canvasX < chartWidth && canvasY >= 0 && canvasY < chartBodyHeight {
					canvas[canvasX][canvasY].char |= brailleDotMap[subY][subX]
					canvas[canvasX][canvasY].color = color
				}
			}

			lastValidX, lastValidY = currX, currY
		}
	}

	// 构建输出字符串
	style := styleByIndex(t.styleIndex)
	var lines []string

	// 预先计算所有Y轴标签及其对应的像素行号
	yAxisLabelCount := 5
	if chartBodyHeight < yAxisLabelCount {
		yAxisLabelCount = chartBodyHeight
	}

	yAxisLabels := make(map[int]string)
	if yAxisLabelCount > 1 {
		for i := 0; i < yAxisLabelCount; i++ {
			normalized := float64(i) / float64(yAxisLabelCount-1) // 0.0 到 1.0
			value := maxVal - normalized*valueRange               // 从最大值到最小值
			pixelRow := int(normalized * float64(chartBodyHeight-1))
			yAxisLabels[pixelRow] = formatLatency(value)
		}
	}

	// 绘制Y轴和图表主体
	for i := 0; i < chartBodyHeight; i++ {
		yLabel := yAxisLabels[i]

		line := fmt.Sprintf("%s%*s[white] %s│[white]", style.axis, yAxisLabelWidth-2, yLabel, style.axis)

		for j := 0; j < chartWidth; j++ {
			cell := canvas[j][i]
			if cell.char == 0 {
				line += " "
			} else {
				line += cell.color + string(rune(0x2800+cell.char)) + "[white]"
			}
		}
		lines = append(lines, line)
	}

	// 绘制X轴
	xAxisLine := fmt.Sprintf("%-*s└%s", yAxisLabelWidth-1, "", strings.Repeat("─", chartWidth))
	lines = append(lines, style.axis+xAxisLine+"[white]")

	// X轴时间刻度显示快照覆盖的时间范围
	startTimeStr := windowStart.Format("15:04:05")
	endTimeStr := windowEnd.Format("15:04:05")

	spaceCount := chartWidth - len(startTimeStr) - len(endTimeStr)
	if spaceCount < 1 {
		spaceCount = 1
	}
	timeLine := fmt.Sprintf("%-*s%s%*s%s", yAxisLabelWidth, "", startTimeStr, spaceCount, "", endTimeStr)
	lines = append(lines, style.axis+timeLine+"[white]")

	// 保护性检查：确保输出不会超过可用高度，保证X轴总是可见
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// drawBrailleLine 使用布雷森汉姆算法在盲文画布上绘制线段
func drawBrailleLine(canvas [][]brailleCell, x1, y1, x2, y2, maxHeight, chartWidth int, color string) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		if y >= 0 && y < maxHeight && x >= 0 && x < chartWidth {
			// 计算子像素位置和画布坐标（每个盲文字符覆盖2x4个子像素）
			subY := y % 4
			subX := x % 2
			canvasX := x / 2
			canvasY := y / 4

			if canvasX >= 0 && canvasX < len(canvas) && canvasY >= 0 && canvasY < len(canvas[0]) {
				canvas[canvasX][canvasY].char |= brailleDotMap[subY][subX]
				canvas[canvasX][canvasY].color = color
			}
		}

		if x == x2 && y == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}
