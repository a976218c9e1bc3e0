// Package tui 绘图风格定义
package tui

// plotStyle 一组图表配色，按配置里的风格索引选择
type plotStyle struct {
	name   string
	colors []string // 按目标顺序循环分配的线条颜色
	axis   string   // 坐标轴和刻度的颜色
}

// plotStyles 可选的绘图风格表
// 索引越界时回退到第一个风格
var plotStyles = []plotStyle{
	{
		name:   "default",
		colors: []string{"[blue]", "[orange]", "[green]", "[red]", "[purple]", "[brown]"},
		axis:   "[gray]",
	},
	{
		name:   "classic",
		colors: []string{"[blue]", "[green]", "[red]", "[cyan]", "[magenta]", "[yellow]"},
		axis:   "[white]",
	},
	{
		name:   "dark_background",
		colors: []string{"[aqua]", "[lime]", "[yellow]", "[fuchsia]", "[red]", "[white]"},
		axis:   "[gray]",
	},
}

// styleByIndex 按索引取绘图风格
func styleByIndex(index int) plotStyle {
	if index < 0 || index >= len(plotStyles) {
		return plotStyles[0]
	}
	return plotStyles[index]
}

// StyleCount 返回可选风格的数量，用于CLI参数校验
func StyleCount() int {
	return len(plotStyles)
}

// StyleName 返回风格名称，用于状态栏展示
func StyleName(index int) string {
	return styleByIndex(index).name
}
