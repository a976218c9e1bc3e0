package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// sampleConfig 构造一个有效的会话配置
func sampleConfig() *SessionConfig {
	return &SessionConfig{
		IntervalSeconds:    60,
		FilterTimeconstant: 4,
		MaxSamples:         100,
		OutputPath:         "/tmp/pingtrend",
		PlotStyleIndex:     2,
		Targets: []core.Target{
			{Name: "Gateway", Address: "192.168.1.1"},
			{Name: "Google", Address: "8.8.8.8"},
		},
	}
}

// TestConfigRoundTrip 测试序列化-反序列化无损往返
func TestConfigRoundTrip(t *testing.T) {
	cfg := sampleConfig()

	data, err := SerializeConfig(cfg)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	parsed, err := DeserializeConfig(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, parsed) {
		t.Errorf("Round trip mismatch:\n  in:  %+v\n  out: %+v", cfg, parsed)
	}
}

// TestConfigMissingFields 测试任何必需字段缺失都导致整体失败
func TestConfigMissingFields(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty document", `{}`},
		{"missing settings", `{"targets":[["a","1.1.1.1"]]}`},
		{"missing targets", `{"settings":{"interval":60,"filtertk":4,"nsamples":100,"path":".","style":0}}`},
		{"missing interval", `{"settings":{"filtertk":4,"nsamples":100,"path":".","style":0},"targets":[]}`},
		{"missing filtertk", `{"settings":{"interval":60,"nsamples":100,"path":".","style":0},"targets":[]}`},
		{"missing nsamples", `{"settings":{"interval":60,"filtertk":4,"path":".","style":0},"targets":[]}`},
		{"missing path", `{"settings":{"interval":60,"filtertk":4,"nsamples":100,"style":0},"targets":[]}`},
		{"missing style", `{"settings":{"interval":60,"filtertk":4,"nsamples":100,"path":"."},"targets":[]}`},
	}

	for _, c := range cases {
		_, err := DeserializeConfig([]byte(c.data))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected ErrParse, got %v", c.name, err)
		}
	}
}

// TestConfigBadShape 测试字段类型错误导致整体失败
func TestConfigBadShape(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `not json at all`},
		{"interval as string", `{"settings":{"interval":"sixty","filtertk":4,"nsamples":100,"path":".","style":0},"targets":[]}`},
		{"target not a pair", `{"settings":{"interval":60,"filtertk":4,"nsamples":100,"path":".","style":0},"targets":[["only-name"]]}`},
		{"target with empty name", `{"settings":{"interval":60,"filtertk":4,"nsamples":100,"path":".","style":0},"targets":[["","1.1.1.1"]]}`},
	}

	for _, c := range cases {
		_, err := DeserializeConfig([]byte(c.data))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected ErrParse, got %v", c.name, err)
		}
	}
}

// TestConfigTargetOrder 测试目标列表保持顺序
func TestConfigTargetOrder(t *testing.T) {
	data := []byte(`{
		"settings": {"interval":10,"filtertk":1,"nsamples":50,"path":".","style":1},
		"targets": [["c","3.3.3.3"],["a","1.1.1.1"],["b","2.2.2.2"]]
	}`)

	cfg, err := DeserializeConfig(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	names := []string{"c", "a", "b"}
	for i, want := range names {
		if cfg.Targets[i].Name != want {
			t.Errorf("Target %d: expected name '%s', got '%s'", i, want, cfg.Targets[i].Name)
		}
	}
}
