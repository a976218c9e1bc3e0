package main

import (
	"fmt"

	"github.com/Kevin-Rudy/pingtrend/pkg/prober"
)

// 程序信息常量
const (
	AppName    = "pingtrend"
	AppVersion = "0.1.0"
	AppDesc    = "带平滑滤波和CSV记录的多目标延迟趋势监控工具"
)

// showSystemInfo 显示系统环境和配置信息
func showSystemInfo() {
	fmt.Println("\n系统信息:")
	fmt.Printf("  操作系统: %s\n", prober.GetOSName())
	fmt.Printf("  权限状态: %s\n", prober.GetPrivilegeStatus())
	fmt.Printf("  实现方式: %s\n", prober.GetImplementationType())
}

// printUsageInstructions 显示TUI操作说明
func printUsageInstructions() {
	fmt.Println("操作说明:")
	fmt.Println("  ↑/↓ 方向键  - 导航选择目标")
	fmt.Println("  在边界继续按方向键 - 切换到全选模式")
	fmt.Println("  s           - 停止/启动采样会话")
	fmt.Println("  w           - 保存当前配置")
	fmt.Println("  q 或 Ctrl+C - 退出程序")
	fmt.Println("========================================")
}
