package internal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type NovaParseConfig struct {
	AppName string `mapstructure:"app_name" yaml:"app_name"`

	Repl struct {
		Prompt         string `mapstructure:"prompt" yaml:"prompt"`
		ContinuePrompt string `mapstructure:"continue_prompt" yaml:"continue_prompt"`
		History        string `mapstructure:"history" yaml:"history"`
		HistoryMax     int    `mapstructure:"history_max" yaml:"history_max"`
		Format         string `mapstructure:"format" yaml:"format"` // tree | sql | json
	} `mapstructure:"repl" yaml:"repl"`

	Server struct {
		Addr      string `mapstructure:"addr" yaml:"addr"`
		Debug     bool   `mapstructure:"debug" yaml:"debug"`
		CacheSize int    `mapstructure:"cache_size" yaml:"cache_size"`
	} `mapstructure:"server" yaml:"server"`

	Log struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novaparse")
	v.SetDefault("repl.prompt", "novaparse> ")
	v.SetDefault("repl.continue_prompt", "...> ")
	v.SetDefault("repl.history_max", 2000)
	v.SetDefault("repl.format", "tree")
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cache_size", 1024)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads the YAML file at path (skipped when empty) over the
// defaults. Flags in fs, when non-nil, override both; a flag named
// "repl.format" binds to the key of the same name.
func LoadConfig(path string, fs *pflag.FlagSet) (*NovaParseConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg NovaParseConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Repl.Format {
	case "tree", "sql", "json":
	default:
		return nil, fmt.Errorf("config: unknown repl.format %q", cfg.Repl.Format)
	}

	return &cfg, nil
}

// WriteConfig emits cfg as YAML, suitable as a starting config file.
func WriteConfig(w io.Writer, cfg *NovaParseConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// LogLevel maps the configured level name to a slog level.
func (c *NovaParseConfig) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger installs a text slog handler at the configured level.
func SetupLogger(w io.Writer, cfg *NovaParseConfig) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})
	slog.SetDefault(slog.New(handler))
}
