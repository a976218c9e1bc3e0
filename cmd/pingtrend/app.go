package main

import (
	"fmt"
	"os"

	"github.com/Kevin-Rudy/pingtrend/pkg/engine"
	"github.com/Kevin-Rudy/pingtrend/pkg/prober"
	"github.com/Kevin-Rudy/pingtrend/pkg/tui"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// runApp 主要应用逻辑处理函数
func runApp(c *cli.Context) error {
	// 加载工作目录下的.env，不存在时静默跳过
	_ = godotenv.Load()

	// IP版本冲突检查
	explicitIPv4 := c.IsSet("4")
	ipv6 := c.Bool("6")
	if explicitIPv4 && ipv6 {
		return cli.Exit("错误: -4 和 -6 选项不能同时使用", 1)
	}

	// 构建配置
	appConfig, err := buildConfigFromCLI(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("参数解析失败: %v", err), 1)
	}

	// 验证配置
	if err := validateConfig(appConfig); err != nil {
		return cli.Exit(fmt.Sprintf("配置验证失败: %v", err), 1)
	}

	fmt.Println("\n正在初始化探测引擎...")

	// 创建Prober实例
	proberInstance, err := prober.NewProber(appConfig.ProberConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建探测引擎: %v", err), 1)
	}

	// 日志缓冲同时充当引擎的LogSink和TUI日志窗口的数据源
	logBuffer := tui.NewLogBuffer(appConfig.TUIConfig.MinSeverity, appConfig.TUIConfig.MaxLogLines)

	eng := engine.NewEngine(proberInstance,
		engine.WithLogSink(logBuffer),
		engine.WithSettings(appConfig.Settings),
	)

	// 配置文件存在时先加载，再把命令行上显式给出的参数覆盖上去
	if appConfig.ConfigPath != "" {
		if err := loadConfigFile(eng, appConfig.ConfigPath); err != nil {
			return cli.Exit(fmt.Sprintf("配置文件加载失败: %v", err), 1)
		}
		if err := overlayCliSettings(eng, c, appConfig); err != nil {
			return cli.Exit(fmt.Sprintf("配置覆盖失败: %v", err), 1)
		}
	}

	// 注册命令行和环境变量提供的目标
	for _, target := range appConfig.Targets {
		if err := eng.AddTarget(target.Name, target.Address); err != nil {
			return cli.Exit(fmt.Sprintf("目标注册失败 %s: %v", target.Name, err), 1)
		}
	}

	if len(eng.Targets()) == 0 {
		return cli.Exit("错误: 必须指定至少一个监控目标\n使用方法: pingtrend <名称=目标地址...>", 1)
	}

	// 显示运行配置
	printRunningConfig(eng, appConfig)

	// 显示系统环境信息
	showSystemInfo()

	fmt.Println("\n正在启动TUI界面...")

	// 显示使用说明
	printUsageInstructions()

	// 创建并启动TUI实例 - 这会阻塞直到用户退出
	tuiInstance := tui.NewTUI(eng, logBuffer, appConfig.TUIConfig, appConfig.ConfigPath)
	if err := tuiInstance.Run(); err != nil {
		return cli.Exit(fmt.Sprintf("TUI运行出错: %v", err), 1)
	}

	fmt.Println("\n程序已退出")
	return nil
}

// loadConfigFile 从磁盘加载配置文档
// 文件不存在不是错误：路径只是之后按w保存的位置
func loadConfigFile(eng *engine.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return eng.LoadConfig(data)
}

// overlayCliSettings 把命令行上显式给出的参数覆盖到已加载的设置上
// CSV开关和归档路径从不持久化，总是取本次运行的命令行值
func overlayCliSettings(eng *engine.Engine, c *cli.Context, appConfig *AppConfig) error {
	settings := eng.Settings()

	if c.IsSet("interval") {
		settings.IntervalSeconds = c.Float64("interval")
	}
	if c.IsSet("filtertk") {
		settings.FilterTimeconstant = c.Int("filtertk")
	}
	if c.IsSet("nsamples") {
		settings.MaxSamples = c.Int("nsamples")
	}
	if c.IsSet("path") {
		settings.OutputPath = c.String("path")
	}
	if c.IsSet("style") {
		settings.PlotStyleIndex = c.Int("style")
	}
	settings.WriteCSV = appConfig.Settings.WriteCSV
	settings.ArchivePath = appConfig.Settings.ArchivePath

	return eng.SetSettings(settings)
}

// printRunningConfig 打印运行配置信息
func printRunningConfig(eng *engine.Engine, appConfig *AppConfig) {
	settings := eng.Settings()

	fmt.Printf("监控目标: %d 个\n", len(eng.Targets()))
	for _, target := range eng.Targets() {
		fmt.Printf("  %s\n", target.Legend())
	}
	fmt.Printf("采样间隔: %gs\n", settings.IntervalSeconds)
	fmt.Printf("滤波常数: %d\n", settings.FilterTimeconstant)
	fmt.Printf("样本上限: %d\n", settings.MaxSamples)
	fmt.Printf("绘图风格: %s\n", tui.StyleName(settings.PlotStyleIndex))
	fmt.Printf("ping超时: %v\n", appConfig.ProberConfig.Timeout)
	if settings.WriteCSV {
		fmt.Printf("CSV目录: %s\n", settings.OutputPath)
	}
	if settings.ArchivePath != "" {
		fmt.Printf("归档数据库: %s\n", settings.ArchivePath)
	}
}
