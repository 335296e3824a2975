package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override file settings.
// MOVIEREC_SERVER__PORT=9000 sets server.port.
const EnvPrefix = "MOVIEREC_"

// CatalogConfig locates the movie catalog.
type CatalogConfig struct {
	// Source is a .csv/.tsv path or sqlite://path?table=name.
	Source string `yaml:"source" koanf:"source"`
}

// VectorizerConfig selects and configures the text vectorizer.
type VectorizerConfig struct {
	Type        string `yaml:"type" koanf:"type"`
	MaxFeatures int    `yaml:"max_features" koanf:"max_features"`
	NgramMin    int    `yaml:"ngram_min" koanf:"ngram_min"`
	NgramMax    int    `yaml:"ngram_max" koanf:"ngram_max"`
	StopWords   string `yaml:"stop_words" koanf:"stop_words"`
	Stemming    bool   `yaml:"stemming" koanf:"stemming"`
}

// VectorStoreConfig selects the vector store implementation.
type VectorStoreConfig struct {
	Type string `yaml:"type" koanf:"type"`
}

// LimitConfig bounds a result list.
type LimitConfig struct {
	DefaultLimit int `yaml:"default_limit" koanf:"default_limit"`
	MaxLimit     int `yaml:"max_limit" koanf:"max_limit"`
}

// ChatConfig bounds chat replies.
type ChatConfig struct {
	RecommendLimit int `yaml:"recommend_limit" koanf:"recommend_limit"`
	SearchLimit    int `yaml:"search_limit" koanf:"search_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host                string   `yaml:"host" koanf:"host"`
	Port                int      `yaml:"port" koanf:"port"`
	ReadTimeoutSecs     int      `yaml:"read_timeout_secs" koanf:"read_timeout_secs"`
	WriteTimeoutSecs    int      `yaml:"write_timeout_secs" koanf:"write_timeout_secs"`
	IdleTimeoutSecs     int      `yaml:"idle_timeout_secs" koanf:"idle_timeout_secs"`
	ShutdownTimeoutSecs int      `yaml:"shutdown_timeout_secs" koanf:"shutdown_timeout_secs"`
	CORSOrigins         []string `yaml:"cors_origins" koanf:"cors_origins"`
	// RateLimitPerMinute limits requests per client IP; 0 disables it.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" koanf:"rate_limit_per_minute"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Catalog     CatalogConfig     `yaml:"catalog" koanf:"catalog"`
	Vectorizer  VectorizerConfig  `yaml:"vectorizer" koanf:"vectorizer"`
	VectorStore VectorStoreConfig `yaml:"vector_store" koanf:"vector_store"`
	Recommend   LimitConfig       `yaml:"recommend" koanf:"recommend"`
	Search      LimitConfig       `yaml:"search" koanf:"search"`
	Chat        ChatConfig        `yaml:"chat" koanf:"chat"`
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Logging     LoggingConfig     `yaml:"logging" koanf:"logging"`
}

// Load layers defaults, the YAML file at path and MOVIEREC_ environment
// variables, in that order. A missing file leaves the defaults in place.
func Load(path string) (*AppConfig, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/movierec/config.yaml.
// If neither exists, it writes defaults to ~/.config/movierec/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	if err := Save(userPath, Default()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/movierec/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "movierec", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Catalog: CatalogConfig{Source: "movies.csv"},
		Vectorizer: VectorizerConfig{
			Type:        "tfidf",
			MaxFeatures: 5000,
			NgramMin:    1,
			NgramMax:    2,
			StopWords:   "english",
		},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Recommend:   LimitConfig{DefaultLimit: 5, MaxLimit: 20},
		Search:      LimitConfig{DefaultLimit: 10, MaxLimit: 50},
		Chat:        ChatConfig{RecommendLimit: 5, SearchLimit: 10},
		Server: ServerConfig{
			Host:                "127.0.0.1",
			Port:                8000,
			ReadTimeoutSecs:     15,
			WriteTimeoutSecs:    30,
			IdleTimeoutSecs:     60,
			ShutdownTimeoutSecs: 10,
			CORSOrigins:         []string{"*"},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps MOVIEREC_SECTION__KEY to section.key.
// Variables without a section separator are ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
