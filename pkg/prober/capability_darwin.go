//go:build darwin

package prober

import (
	"errors"
	"os"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// darwinCapability macOS平台能力实现
type darwinCapability struct{}

// hasPrivilegedAccess 检查macOS root权限
func (d *darwinCapability) hasPrivilegedAccess() bool {
	return checkDarwinRoot()
}

// createPrivilegedProber 创建特权模式prober（使用raw socket）
func (d *darwinCapability) createPrivilegedProber(config *Config) (core.Prober, error) {
	return newPrivilegedProber(config)
}

// createUnprivilegedProber macOS非特权模式直接报错要求sudo
func (d *darwinCapability) createUnprivilegedProber(config *Config) (core.Prober, error) {
	return nil, errors.New("macOS需要root权限才能进行ping操作，请使用sudo运行")
}

// checkDarwinRoot 检查macOS系统的root权限
func checkDarwinRoot() bool {
	return os.Geteuid() == 0
}

// getPlatformCapability 获取macOS平台的能力实现
func getPlatformCapability() platformCapability {
	return &darwinCapability{}
}
