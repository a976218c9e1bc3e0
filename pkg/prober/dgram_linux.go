//go:build linux

// Package prober - Linux非特权模式实现
// 使用SOCK_DGRAM类型的ICMP套接字，仅适用于Linux系统
package prober

import (
	"net"
	"syscall"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// recvTimeout 计算距离绝对截止时刻的剩余等待时间
// 截止已过时返回false，调用方立即按超时处理
func recvTimeout(deadline, now time.Time) (time.Duration, bool) {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// dgramProber Linux非特权模式的ping实现
// 每次探测使用独立的套接字，内核为每个套接字分配独立的echo ID，
// 因此并发探测之间只需用序列号区分
type dgramProber struct {
	config *Config
}

// newLinuxDgramProber 创建Linux非特权模式的prober实例
func newLinuxDgramProber(config *Config) (core.Prober, error) {
	// DGRAM ICMP套接字只支持IPv4实现
	if config.IPVersion == 6 {
		return newPrivilegedProber(config)
	}
	return &dgramProber{config: config}, nil
}

// Probe 实现core.Prober接口，执行一次阻塞的往返测量
func (p *dgramProber) Probe(address string) core.ProbeResult {
	// 解析目标地址
	dst, err := net.ResolveIPAddr(p.config.GetIPProtocol(), address)
	if err != nil {
		return resolutionFailure()
	}

	ip4 := dst.IP.To4()
	if ip4 == nil {
		return resolutionFailure()
	}

	// 创建DGRAM ICMP socket
	sock, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_DGRAM, syscall.IPPROTO_ICMP)
	if err != nil {
		return timeoutResult()
	}
	defer syscall.Close(sock)

	seq := nextSeq()

	// 构建ICMP消息（ID由内核重写，发送值无关紧要）
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   0,
			Seq:  seq,
			Data: payload,
		},
	}

	// 序列化ICMP消息
	data, err := msg.Marshal(nil)
	if err != nil {
		return timeoutResult()
	}

	// 构建sockaddr_in结构
	sockaddr := &syscall.SockaddrInet4{}
	copy(sockaddr.Addr[:], ip4)

	// 记录发送时间和绝对截止时刻
	startTime := time.Now()
	deadline := startTime.Add(p.config.Timeout)

	if err := syscall.Sendto(sock, data, 0, sockaddr); err != nil {
		return timeoutResult()
	}

	// 等待回复
	reply := make([]byte, 1500)
	for {
		// 接收超时以剩余时间为准，杂散报文不能把单次探测拖过总超时
		remaining, ok := recvTimeout(deadline, time.Now())
		if !ok {
			return timeoutResult()
		}
		tv := syscall.NsecToTimeval(remaining.Nanoseconds())
		if err := syscall.SetsockoptTimeval(sock, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
			return timeoutResult()
		}

		n, from, err := syscall.Recvfrom(sock, reply, 0)
		if err != nil {
			// 超时或其他错误
			return timeoutResult()
		}

		// 检查来源地址
		if fromAddr, ok := from.(*syscall.SockaddrInet4); ok {
			fromIP := net.IPv4(fromAddr.Addr[0], fromAddr.Addr[1], fromAddr.Addr[2], fromAddr.Addr[3])
			if !fromIP.Equal(dst.IP) {
				continue
			}
		}

		// 解析ICMP回复
		replyMsg, err := icmp.ParseMessage(protocolICMP, reply[:n])
		if err != nil {
			continue
		}

		// 验证回复的序列号（ID已被内核改写为套接字本地值）
		if echo, ok := replyMsg.Body.(*icmp.Echo); ok {
			if echo.Seq == seq {
				rtt := time.Since(startTime)
				return latencyResult(float64(rtt.Nanoseconds()) / 1e6)
			}
		}
	}
}
