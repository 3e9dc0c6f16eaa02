package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/quentinv/battrace/core/estimation"
	"github.com/quentinv/battrace/core/metrics"
	"github.com/quentinv/battrace/infra/mqtt"
)

type Config struct {
	Log       LogConfig         `json:"log"`
	Collector CollectorConfig   `json:"collector"`
	Estimator estimation.Config `json:"estimator"`
	Metrics   metrics.Config    `json:"metrics"`
	MQTT      mqtt.Config       `json:"mqtt"`
	HTTP      HTTPConfig        `json:"http"`
	Sentry    SentryConfig      `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BT_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Log.SetDefaults()
	cfg.Collector.SetDefaults()
	cfg.Estimator.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.HTTP.SetDefaults()
	if err := cfg.Log.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Collector.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Estimator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
