package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Sentinel SentinelConfig `yaml:"sentinel"`
}

// SentinelConfig is the project configuration.
type SentinelConfig struct {
	Input     InputConfig     `yaml:"input"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Risk      RiskConfig      `yaml:"risk"`
	Inference InferenceConfig `yaml:"inference"`
	Verdicts  OutputConfig    `yaml:"verdicts"`
	Answers   OutputConfig    `yaml:"answers"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InputConfig controls the input reader.
type InputConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig controls Redis input.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Key          string        `yaml:"key"`
	BlockTimeout time.Duration `yaml:"block_timeout"`
}

// PipelineConfig controls pipeline behavior.
type PipelineConfig struct {
	Workers       int           `yaml:"workers"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	DedupeSize    int           `yaml:"dedupe_size"`
}

// RiskConfig controls risk evaluation.
type RiskConfig struct {
	ProfileOverride string `yaml:"profile_override"`
}

// InferenceConfig controls the generated-explanation path. With an empty URL
// every answer is rendered from templates.
type InferenceConfig struct {
	URL        string            `yaml:"url"`
	Timeout    time.Duration     `yaml:"timeout"`
	MaxTokens  int               `yaml:"max_tokens"`
	StrictMode bool              `yaml:"strict_mode"`
	Headers    map[string]string `yaml:"headers"`
}

// OutputConfig controls one output sink.
type OutputConfig struct {
	Mode string           `yaml:"mode"` // file|http
	File FileOutputConfig `yaml:"file"`
	HTTP HTTPOutputConfig `yaml:"http"`
}

// FileOutputConfig config for local JSON output.
type FileOutputConfig struct {
	Path string `yaml:"path"`
}

// HTTPOutputConfig config for remote output.
type HTTPOutputConfig struct {
	URL     string            `yaml:"url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
