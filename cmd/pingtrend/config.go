package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
	"github.com/Kevin-Rudy/pingtrend/pkg/engine"
	"github.com/Kevin-Rudy/pingtrend/pkg/prober"
	"github.com/Kevin-Rudy/pingtrend/pkg/tui"
	"github.com/urfave/cli/v2"
)

// 环境变量里的目标引导列表，格式与命令行参数一致，逗号分隔
const envTargetsKey = "PINGTREND_TARGETS"

// AppConfig 应用层配置聚合
type AppConfig struct {
	Settings     engine.Settings
	ProberConfig *prober.Config
	TUIConfig    *tui.Config
	ConfigPath   string
	Targets      []core.Target
}

// buildConfigFromCLI 从命令行参数构建配置
func buildConfigFromCLI(c *cli.Context) (*AppConfig, error) {
	// 构建 prober 配置
	proberConfig := prober.DefaultConfig()
	if c.Bool("6") {
		proberConfig.IPVersion = 6
	}
	if c.IsSet("timeout") {
		proberConfig.Timeout = c.Duration("timeout")
	}

	// 构建引擎运行设置
	settings := engine.DefaultSettings()
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
	settings.WriteCSV = c.Bool("csv")
	settings.ArchivePath = c.String("archive")

	// 构建 TUI 配置
	minSeverity := core.SeverityInfo
	if c.Bool("debug") {
		minSeverity = core.SeverityDebug
	}
	tuiConfig := tui.NewConfigWithOptions(
		tui.WithRefreshInterval(c.Duration("refresh-rate")),
		tui.WithMinSeverity(minSeverity),
	)

	// 收集目标：命令行参数优先，为空时回退到环境变量
	targets, err := collectTargets(c.Args().Slice())
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Settings:     settings,
		ProberConfig: proberConfig,
		TUIConfig:    tuiConfig,
		ConfigPath:   c.String("config"),
		Targets:      targets,
	}, nil
}

// collectTargets 解析目标列表
// 每项的格式是"名称=地址"，省略名称时地址同时作为名称
func collectTargets(args []string) ([]core.Target, error) {
	entries := args
	if len(entries) == 0 {
		if env := os.Getenv(envTargetsKey); env != "" {
			for _, entry := range strings.Split(env, ",") {
				if entry = strings.TrimSpace(entry); entry != "" {
					entries = append(entries, entry)
				}
			}
		}
	}

	targets := make([]core.Target, 0, len(entries))
	for _, entry := range entries {
		name, address, found := strings.Cut(entry, "=")
		if !found {
			name, address = entry, entry
		}
		if name == "" || address == "" {
			return nil, fmt.Errorf("无效的目标定义: %q", entry)
		}
		targets = append(targets, core.Target{Name: name, Address: address})
	}

	return targets, nil
}

// validateConfig 验证配置的合理性
func validateConfig(config *AppConfig) error {
	// 验证 prober 配置
	if err := config.ProberConfig.Validate(); err != nil {
		return fmt.Errorf("prober配置错误: %v", err)
	}

	// 验证引擎运行设置
	if err := config.Settings.Validate(); err != nil {
		return fmt.Errorf("引擎设置错误: %v", err)
	}

	// 验证 TUI 配置
	if err := config.TUIConfig.Validate(); err != nil {
		return fmt.Errorf("tui配置错误: %v", err)
	}

	if config.Settings.PlotStyleIndex < 0 || config.Settings.PlotStyleIndex >= tui.StyleCount() {
		return fmt.Errorf("绘图风格索引必须在0到%d之间", tui.StyleCount()-1)
	}

	return nil
}
