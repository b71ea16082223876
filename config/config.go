package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	OSS struct {
		Region          string `yaml:"region"`
		Endpoint        string `yaml:"endpoint"`
		BucketName      string `yaml:"bucket_name"`
		AccessKeyID     string `yaml:"access_key_id"`
		AccessKeySecret string `yaml:"access_key_secret"`
	} `yaml:"oss"`

	Inference struct {
		DetectorEndpoint string `yaml:"detector_endpoint"`
		OCREndpoint      string `yaml:"ocr_endpoint"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
	} `yaml:"inference"`

	Analysis struct {
		// 最大并发分析的PDF数量
		MaxWorkers int `yaml:"max_workers"`
	} `yaml:"analysis"`
}

var Cfg *Config

// Load reads the YAML config file into Cfg. The path comes from the
// CONFIG_PATH environment variable, falling back to ./config.yaml.
func Load() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	if cfg.Analysis.MaxWorkers <= 0 {
		cfg.Analysis.MaxWorkers = 4
	}
	if cfg.Inference.TimeoutSeconds <= 0 {
		cfg.Inference.TimeoutSeconds = 60
	}

	Cfg = cfg
	return nil
}
