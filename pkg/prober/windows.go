//go:build windows

// Package prober - Windows非特权模式实现
// 使用Icmp.dll系统调用，适用于Windows系统
package prober

import (
	"net"
	"syscall"
	"time"
	"unsafe"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"golang.org/x/sys/windows"
)

var (
	// 加载Icmp.dll库
	icmpDLL = windows.NewLazyDLL("Icmp.dll")

	// 获取函数地址
	icmpCreateFile  = icmpDLL.NewProc("IcmpCreateFile")
	icmpCloseHandle = icmpDLL.NewProc("IcmpCloseHandle")
	icmpSendEcho    = icmpDLL.NewProc("IcmpSendEcho")
)

// ICMP_ECHO_REPLY Windows ICMP回复结构体
type ICMP_ECHO_REPLY struct {
	Address       uint32
	Status        uint32
	RoundTripTime uint32
	DataSize      uint16
	Reserved      uint16
	Data          uintptr
	Options       ICMP_OPTIONS
}

// ICMP_OPTIONS Windows ICMP选项结构体
type ICMP_OPTIONS struct {
	Ttl         uint8
	Tos         uint8
	Flags       uint8
	OptionsSize uint8
	OptionsData uintptr
}

// windowsProber Windows非特权模式的ping实现
type windowsProber struct {
	config     *Config
	icmpHandle syscall.Handle // ICMP句柄，进程生命周期内复用
}

// newWindowsProber 创建Windows非特权模式的prober实例
func newWindowsProber(config *Config) (core.Prober, error) {
	p := &windowsProber{config: config}

	// 创建ICMP句柄
	ret, _, err := icmpCreateFile.Call()
	if ret == 0 || ret == uintptr(syscall.InvalidHandle) {
		return nil, err
	}

	p.icmpHandle = syscall.Handle(ret)
	return p, nil
}

// Probe 实现core.Prober接口，执行一次阻塞的往返测量
func (p *windowsProber) Probe(address string) core.ProbeResult {
	// 解析目标地址
	dst, err := net.ResolveIPAddr(p.config.GetIPProtocol(), address)
	if err != nil {
		return resolutionFailure()
	}

	// 将IP地址转换为32位整数（网络字节序）
	ip := dst.IP.To4()
	if ip == nil {
		return resolutionFailure()
	}
	destAddr := uint32(ip[0]) | (uint32(ip[1]) << 8) | (uint32(ip[2]) << 16) | (uint32(ip[3]) << 24)

	// 准备接收缓冲区
	// 需要足够大的缓冲区来存储ICMP_ECHO_REPLY结构和数据
	replySize := unsafe.Sizeof(ICMP_ECHO_REPLY{}) + uintptr(len(payload)) + 8
	replyBuffer := make([]byte, replySize)

	// 设置超时（毫秒）
	timeoutMs := uint32(p.config.Timeout.Milliseconds())

	// 记录发送时间
	sendTime := time.Now()

	// 调用IcmpSendEcho
	ret, _, _ := icmpSendEcho.Call(
		uintptr(p.icmpHandle),                    // ICMP句柄
		uintptr(destAddr),                        // 目标IP地址
		uintptr(unsafe.Pointer(&payload[0])),     // 发送数据
		uintptr(len(payload)),                    // 发送数据长度
		0,                                        // ICMP选项（NULL）
		uintptr(unsafe.Pointer(&replyBuffer[0])), // 接收缓冲区
		uintptr(len(replyBuffer)),                // 接收缓冲区大小
		uintptr(timeoutMs),                       // 超时时间（毫秒）
	)

	receiveTime := time.Now()

	if ret == 0 {
		// 请求失败或超时
		return timeoutResult()
	}

	// 解析回复
	reply := (*ICMP_ECHO_REPLY)(unsafe.Pointer(&replyBuffer[0]))

	if reply.Status != 0 { // != IP_SUCCESS
		return timeoutResult()
	}

	// 使用Windows API返回的往返时间，或计算时间差
	var rtt time.Duration
	if reply.RoundTripTime > 0 {
		rtt = time.Duration(reply.RoundTripTime) * time.Millisecond
	} else {
		rtt = receiveTime.Sub(sendTime)
	}

	return latencyResult(float64(rtt.Nanoseconds()) / 1e6)
}

// checkWindowsAdmin 检查是否具有Windows管理员权限
func checkWindowsAdmin() bool {
	var sid *windows.SID

	// 获取管理员组的SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	// 获取当前进程的token
	token := windows.Token(0)

	// 检查是否是管理员组成员
	isMember, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return isMember
}
