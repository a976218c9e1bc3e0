// Package prober - 特权模式实现
// 使用原始套接字，需要管理员/root权限，但支持所有操作系统
package prober

import (
	"net"
	"os"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// ICMP协议号，用于解析回复报文
const (
	protocolICMP     = 1
	protocolIPv6ICMP = 58
)

// privilegedProber 特权模式的ping实现
type privilegedProber struct {
	config *Config
}

// newPrivilegedProber 创建特权模式的prober实例
func newPrivilegedProber(config *Config) (core.Prober, error) {
	return &privilegedProber{config: config}, nil
}

// Probe 实现core.Prober接口，执行一次阻塞的往返测量
func (p *privilegedProber) Probe(address string) core.ProbeResult {
	// 解析目标地址（注册时已预解析，此处失败属于异常输入）
	dst, err := net.ResolveIPAddr(p.config.GetIPProtocol(), address)
	if err != nil {
		return resolutionFailure()
	}

	// 选择协议族对应的echo类型
	network := "ip4:icmp"
	proto := protocolICMP
	echoType := icmp.Type(ipv4.ICMPTypeEcho)
	if p.config.IPVersion == 6 {
		network = "ip6:ipv6-icmp"
		proto = protocolIPv6ICMP
		echoType = icmp.Type(ipv6.ICMPTypeEchoRequest)
	}

	// 创建面向目标的原始套接字
	conn, err := net.Dial(network, dst.String())
	if err != nil {
		// 网络不可达等连接失败归类为超时
		return timeoutResult()
	}
	defer conn.Close()

	seq := nextSeq()

	// 创建ICMP包
	msg := &icmp.Message{
		Type: echoType,
		Code: 0,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  seq,
			Data: payload,
		},
	}

	// 序列化ICMP包
	data, err := msg.Marshal(nil)
	if err != nil {
		return timeoutResult()
	}

	// 记录发送时间并设置超时
	startTime := time.Now()
	conn.SetDeadline(startTime.Add(p.config.Timeout))

	if _, err := conn.Write(data); err != nil {
		return timeoutResult()
	}

	// 读取回复，跳过不属于本次探测的报文
	reply := make([]byte, 1500)
	for {
		n, err := conn.Read(reply)
		if err != nil {
			// 超时或套接字错误
			return timeoutResult()
		}

		replyMsg, err := icmp.ParseMessage(proto, reply[:n])
		if err != nil {
			continue
		}

		// 验证回复的ID和序列号
		if echo, ok := replyMsg.Body.(*icmp.Echo); ok {
			if echo.ID == (os.Getpid()&0xffff) && echo.Seq == seq {
				rtt := time.Since(startTime)
				return latencyResult(float64(rtt.Nanoseconds()) / 1e6)
			}
		}
	}
}
