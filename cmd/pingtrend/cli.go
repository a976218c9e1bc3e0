package main

import (
	"fmt"
	"time"

	"github.com/Kevin-Rudy/pingtrend/pkg/prober"
	"github.com/Kevin-Rudy/pingtrend/pkg/tui"
	"github.com/urfave/cli/v2"
)

// createCliApp 创建CLI应用实例
func createCliApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Version: AppVersion,
		Usage:   AppDesc,
		Flags:   createCliFlags(),
		Action:  runApp,
		Before: func(c *cli.Context) error {
			// 显示启动信息
			fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
			return nil
		},
		ArgsUsage: "<名称=目标地址...>",
	}

	// 添加子命令
	app.Commands = createCommands()

	return app
}

// createCliFlags 创建CLI参数定义
func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径，存在时先加载再应用其他参数",
		},
		&cli.BoolFlag{
			Name:  "4",
			Usage: "使用IPv4进行域名解析（默认）",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "6",
			Usage: "使用IPv6进行域名解析",
		},
		&cli.Float64Flag{
			Name:    "interval",
			Aliases: []string{"n"},
			Value:   60,
			Usage:   "采样周期间隔（秒）",
		},
		&cli.IntFlag{
			Name:    "filtertk",
			Aliases: []string{"k"},
			Value:   1,
			Usage:   "EMA滤波时间常数，1表示不平滑",
		},
		&cli.IntFlag{
			Name:    "nsamples",
			Aliases: []string{"b"},
			Value:   100,
			Usage:   "绘图缓冲区的最大样本数",
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Value:   ".",
			Usage:   "CSV输出目录",
		},
		&cli.IntFlag{
			Name:    "style",
			Aliases: []string{"s"},
			Value:   2,
			Usage:   "绘图风格索引",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "每个周期把原始结果追加到CSV文件",
		},
		&cli.StringFlag{
			Name:  "archive",
			Usage: "sqlite归档数据库路径，跨会话累积原始样本",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Value:   3 * time.Second,
			Usage:   "单次ping的超时时间 (例如: 3s, 1000ms)",
		},
		&cli.DurationFlag{
			Name:    "refresh-rate",
			Aliases: []string{"r"},
			Value:   100 * time.Millisecond,
			Usage:   "UI驱动频率 (例如: 100ms, 500ms)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "在日志窗口显示每周期的测量值",
		},
	}
}

// createCommands 创建子命令
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "显示详细版本信息",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("描述: %s\n", AppDesc)
				fmt.Printf("系统: %s\n", prober.GetOSName())
				fmt.Printf("实现: %s\n", prober.GetImplementationType())
				fmt.Printf("可选风格: %d 种\n", tui.StyleCount())
				return nil
			},
		},
	}
}
