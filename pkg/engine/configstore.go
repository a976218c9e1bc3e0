// Package engine - 会话配置的序列化与反序列化
// 配置文档是UTF-8编码的JSON对象，通过显式的保存/加载动作读写
package engine

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionConfig 一次采样会话的完整设置
// 序列化/反序列化满足无损往返：Deserialize(Serialize(cfg)) == cfg
type SessionConfig struct {
	IntervalSeconds    float64       // ping间隔（秒），必须大于0
	FilterTimeconstant int           // EMA滤波时间常数，<=1表示不平滑
	MaxSamples         int           // 绘图缓冲区的最大样本数
	OutputPath         string        // CSV输出目录
	PlotStyleIndex     int           // 绘图样式索引
	Targets            []core.Target // 按顺序排列的目标列表
}

// configSettings 文档中settings对象的结构
// 全部用指针以便区分缺失字段和零值
type configSettings struct {
	Interval *float64 `json:"interval"`
	FilterTk *int     `json:"filtertk"`
	NSamples *int     `json:"nsamples"`
	Path     *string  `json:"path"`
	Style    *int     `json:"style"`
}

// configDocument 配置文档的顶层结构
type configDocument struct {
	Settings *configSettings `json:"settings"`
	Targets  *[][]string     `json:"targets"`
}

// SerializeConfig 把会话配置编码为JSON文档
func SerializeConfig(cfg *SessionConfig) ([]byte, error) {
	targets := make([][]string, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		targets = append(targets, []string{target.Name, target.Address})
	}

	doc := configDocument{
		Settings: &configSettings{
			Interval: &cfg.IntervalSeconds,
			FilterTk: &cfg.FilterTimeconstant,
			NSamples: &cfg.MaxSamples,
			Path:     &cfg.OutputPath,
			Style:    &cfg.PlotStyleIndex,
		},
		Targets: &targets,
	}

	data, err := json.MarshalIndent(&doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("配置序列化失败: %w", err)
	}
	return data, nil
}

// DeserializeConfig 解析JSON配置文档
// 任何必需字段缺失或形状错误都会使整个加载失败，
// 调用方绝不会拿到部分解析的配置
func DeserializeConfig(data []byte) (*SessionConfig, error) {
	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if doc.Settings == nil {
		return nil, fmt.Errorf("%w: 缺少settings对象", ErrParse)
	}
	if doc.Targets == nil {
		return nil, fmt.Errorf("%w: 缺少targets列表", ErrParse)
	}

	settings := doc.Settings
	switch {
	case settings.Interval == nil:
		return nil, fmt.Errorf("%w: 缺少settings.interval", ErrParse)
	case settings.FilterTk == nil:
		return nil, fmt.Errorf("%w: 缺少settings.filtertk", ErrParse)
	case settings.NSamples == nil:
		return nil, fmt.Errorf("%w: 缺少settings.nsamples", ErrParse)
	case settings.Path == nil:
		return nil, fmt.Errorf("%w: 缺少settings.path", ErrParse)
	case settings.Style == nil:
		return nil, fmt.Errorf("%w: 缺少settings.style", ErrParse)
	}

	targets := make([]core.Target, 0, len(*doc.Targets))
	for i, pair := range *doc.Targets {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return nil, fmt.Errorf("%w: targets[%d] 必须是 [名称, 地址] 对", ErrParse, i)
		}
		targets = append(targets, core.Target{Name: pair[0], Address: pair[1]})
	}

	return &SessionConfig{
		IntervalSeconds:    *settings.Interval,
		FilterTimeconstant: *settings.FilterTk,
		MaxSamples:         *settings.NSamples,
		OutputPath:         *settings.Path,
		PlotStyleIndex:     *settings.Style,
		Targets:            targets,
	}, nil
}
