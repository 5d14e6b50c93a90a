package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config describes the codelensd YAML configuration.
type config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Gate struct {
		BodySizeLimit   string `yaml:"body_size_limit"`
		MaxRequests     int    `yaml:"max_requests"`
		WindowMs        int    `yaml:"window_ms"`
		AllowedOrigin   string `yaml:"allowed_origin"`
		SecurityHeaders *bool  `yaml:"security_headers"`
	} `yaml:"gate"`
	LLM struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"llm"`
	Web struct {
		Title string `yaml:"title"`
	} `yaml:"web"`
}

// loadConfig reads and validates the configuration file.
func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Gate.BodySizeLimit == "" {
		cfg.Gate.BodySizeLimit = "10mb"
	}
	if cfg.Gate.MaxRequests == 0 {
		cfg.Gate.MaxRequests = 100
	}
	if cfg.Gate.MaxRequests < 0 {
		return cfg, fmt.Errorf("gate.max_requests must be positive")
	}
	if cfg.Gate.WindowMs == 0 {
		cfg.Gate.WindowMs = 60000
	}
	if cfg.Gate.WindowMs < 0 {
		return cfg, fmt.Errorf("gate.window_ms must be positive")
	}
	if cfg.Gate.AllowedOrigin == "" {
		return cfg, fmt.Errorf("gate.allowed_origin is required")
	}
	if cfg.LLM.Model == "" {
		return cfg, fmt.Errorf("llm.model is required")
	}
	return cfg, nil
}

// securityHeadersEnabled resolves the optional toggle, defaulting to on.
func (c config) securityHeadersEnabled() bool {
	if c.Gate.SecurityHeaders == nil {
		return true
	}
	return *c.Gate.SecurityHeaders
}
