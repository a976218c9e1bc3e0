// Package engine - 错误定义
// 所有可预期的失败都有独立的哨兵错误，调用方用errors.Is区分
package engine

import "errors"

var (
	// ErrInvalidInput 目标名称或地址为空
	ErrInvalidInput = errors.New("目标名称和地址不能为空")

	// ErrResolution 目标地址无法解析
	ErrResolution = errors.New("无法解析目标地址")

	// ErrBadInterval ping间隔必须为正数
	ErrBadInterval = errors.New("ping间隔必须是大于0的数值")

	// ErrBadSampleCount 绘图样本数不能为负数
	ErrBadSampleCount = errors.New("绘图样本数不能为负数")

	// ErrBadTimeconstant 滤波时间常数不能为负数
	ErrBadTimeconstant = errors.New("滤波时间常数不能为负数")

	// ErrNoTargets 注册表为空时禁止启动会话
	ErrNoTargets = errors.New("没有已注册的ping目标")

	// ErrSessionRunning 采样会话进行中，禁止修改配置或目标
	ErrSessionRunning = errors.New("采样会话进行中，禁止执行该操作")

	// ErrParse 配置文档不完整或格式错误，整体拒绝加载
	ErrParse = errors.New("配置文档不完整或格式错误")
)
