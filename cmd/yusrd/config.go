package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Durar3Ali/Yusr/pkg/logging"
	"github.com/Durar3Ali/Yusr/pkg/ocr"
)

// serverConfig is the resolved yusrd configuration after the config
// file and the environment overrides are applied.
type serverConfig struct {
	Addr          string
	CORSOrigins   []string
	MaxUploadMiB  int64
	Log           logging.Config
	OpenAIBaseURL string
	DocumentAI    ocr.Config
}

// yamlConfig mirrors the config file structure.
type yamlConfig struct {
	Addr         string   `yaml:"addr"`
	CORSOrigins  []string `yaml:"cors_origins"`
	MaxUploadMiB int64    `yaml:"max_upload_mib"`
	Log          struct {
		Style string `yaml:"style"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	OpenAI struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
	DocumentAI struct {
		ProjectID   string `yaml:"project_id"`
		Location    string `yaml:"location"`
		ProcessorID string `yaml:"processor_id"`
	} `yaml:"documentai"`
}

func defaultConfig() serverConfig {
	return serverConfig{
		Addr:         ":5000",
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxUploadMiB: 50,
		Log:          logging.Config{Style: logging.StyleTerminal, Level: "info"},
	}
}

// loadConfig merges a YAML config file over cfg. Absent fields keep
// their current values.
func loadConfig(path string, cfg *serverConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var parsed yamlConfig
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if parsed.Addr != "" {
		cfg.Addr = parsed.Addr
	}
	if len(parsed.CORSOrigins) > 0 {
		cfg.CORSOrigins = parsed.CORSOrigins
	}
	if parsed.MaxUploadMiB > 0 {
		cfg.MaxUploadMiB = parsed.MaxUploadMiB
	}
	if parsed.Log.Style != "" {
		cfg.Log.Style = logging.Style(parsed.Log.Style)
	}
	if parsed.Log.Level != "" {
		cfg.Log.Level = parsed.Log.Level
	}
	if parsed.OpenAI.BaseURL != "" {
		cfg.OpenAIBaseURL = parsed.OpenAI.BaseURL
	}
	cfg.DocumentAI = ocr.Config{
		ProjectID:   parsed.DocumentAI.ProjectID,
		Location:    parsed.DocumentAI.Location,
		ProcessorID: parsed.DocumentAI.ProcessorID,
	}
	return nil
}

// applyEnv applies the PORT and CORS_ORIGINS environment overrides on
// top of the config file.
func applyEnv(cfg *serverConfig) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		var origins []string
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.CORSOrigins = origins
	}
}
