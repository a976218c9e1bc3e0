// Package prober - 平台能力接口定义
// 定义了跨平台的权限检测和prober创建接口
package prober

import (
	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// platformCapability 定义平台能力接口
// 每个平台实现此接口来提供权限检测和prober创建功能
type platformCapability interface {
	// hasPrivilegedAccess 检查是否有特权访问能力
	// Windows: 检查管理员权限
	// Linux: 检查CAP_NET_RAW或root权限
	// macOS: 检查root权限
	hasPrivilegedAccess() bool

	// createPrivilegedProber 创建特权模式prober
	// 所有平台统一使用raw socket实现
	createPrivilegedProber(config *Config) (core.Prober, error)

	// createUnprivilegedProber 创建非特权模式prober
	// Windows: 使用Windows API
	// Linux: 使用DGRAM socket
	// macOS: 返回错误要求sudo
	createUnprivilegedProber(config *Config) (core.Prober, error)
}
