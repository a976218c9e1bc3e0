// Package prober 实现了core.Prober接口，提供一次性的往返时间测量
// 根据操作系统和用户权限自动选择最合适的底层实现
package prober

import (
	"math"
	"runtime"
	"sync/atomic"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// payload 每个echo请求携带的数据
var payload = []byte("pingtrend")

// seqCounter 进程内递增的序列号，保证并发探测互不混淆
var seqCounter uint32

// nextSeq 获取下一个echo序列号
func nextSeq() int {
	return int(atomic.AddUint32(&seqCounter, 1) & 0xffff)
}

// NewProber 创建新的Prober实例
func NewProber(config *Config) (core.Prober, error) {
	if config == nil {
		config = DefaultConfig()
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 获取当前平台的能力实现
	platform := getPlatformCapability()

	// 优先尝试特权模式（所有平台统一用raw socket）
	if platform.hasPrivilegedAccess() {
		return platform.createPrivilegedProber(config)
	}

	// 降级到非特权模式（各平台不同的实现）
	return platform.createUnprivilegedProber(config)
}

// timeoutResult 构造超时结果
func timeoutResult() core.ProbeResult {
	return core.ProbeResult{Kind: core.ResultTimeout, LatencyMs: math.NaN()}
}

// resolutionFailure 构造解析失败结果
func resolutionFailure() core.ProbeResult {
	return core.ProbeResult{Kind: core.ResultResolutionFailure, LatencyMs: math.NaN()}
}

// latencyResult 构造成功结果
func latencyResult(latencyMs float64) core.ProbeResult {
	return core.ProbeResult{Kind: core.ResultLatency, LatencyMs: latencyMs}
}

// GetSystemInfo 获取完整的系统信息
// 返回操作系统名称、权限状态和实现类型
func GetSystemInfo() (osName, privilegeStatus, implementationType string) {
	// 获取操作系统名称
	switch runtime.GOOS {
	case "windows":
		osName = "Windows"
	case "linux":
		osName = "Linux"
	case "darwin":
		osName = "macOS"
	default:
		osName = runtime.GOOS
	}

	// 获取当前平台能力并检查权限状态
	platform := getPlatformCapability()
	hasPriv := platform.hasPrivilegedAccess()

	switch runtime.GOOS {
	case "windows":
		if hasPriv {
			privilegeStatus = "管理员模式 (Raw Socket)"
			implementationType = "Raw Socket"
		} else {
			privilegeStatus = "普通用户模式 (Windows API)"
			implementationType = "Windows ICMP API"
		}
	case "linux":
		if hasPriv {
			privilegeStatus = "特权模式 (Raw Socket)"
			implementationType = "Linux Raw Socket"
		} else {
			privilegeStatus = "非特权模式 (DGRAM Socket)"
			implementationType = "Linux DGRAM Socket"
		}
	case "darwin":
		if hasPriv {
			privilegeStatus = "特权模式 (Root权限)"
			implementationType = "macOS Raw Socket"
		} else {
			privilegeStatus = "权限不足 (需要sudo)"
			implementationType = "macOS Raw Socket (未启用)"
		}
	default:
		if hasPriv {
			privilegeStatus = "特权模式"
			implementationType = "通用Raw Socket"
		} else {
			privilegeStatus = "权限不足"
			implementationType = "通用Raw Socket (需要提权)"
		}
	}

	return
}

// GetOSName 获取操作系统名称
func GetOSName() string {
	osName, _, _ := GetSystemInfo()
	return osName
}

// GetPrivilegeStatus 获取权限状态描述
func GetPrivilegeStatus() string {
	_, privilegeStatus, _ := GetSystemInfo()
	return privilegeStatus
}

// GetImplementationType 获取ping实现类型描述
func GetImplementationType() string {
	_, _, implementationType := GetSystemInfo()
	return implementationType
}

// HasPrivilegedAccess 检查是否有特权访问能力
func HasPrivilegedAccess() bool {
	platform := getPlatformCapability()
	return platform.hasPrivilegedAccess()
}
