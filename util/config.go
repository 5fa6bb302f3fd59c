package util

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Tag presets understood by TAG_PRESET.
const (
	PresetBasic  = "basic"
	PresetExtras = "extras"
)

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`
	TagPreset         string        `mapstructure:"TAG_PRESET"`
	TagsFile          string        `mapstructure:"TAGS_FILE"`
	Autolink          bool          `mapstructure:"AUTOLINK"`
	MaxBodyLen        int           `mapstructure:"MAX_BODY_LEN"`
	MaxWarnings       int           `mapstructure:"MAX_WARNINGS"`
	RenderCacheTTL    time.Duration `mapstructure:"RENDER_CACHE_TTL"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "production")
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("TAG_PRESET", PresetExtras)
	viper.SetDefault("AUTOLINK", true)
	viper.SetDefault("MAX_BODY_LEN", 64*1024)
	viper.SetDefault("MAX_WARNINGS", 100)
	viper.SetDefault("RENDER_CACHE_TTL", 10*time.Minute)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate checks the values which can't be fixed by defaults.
func (config *Config) Validate() error {
	if config.TagsFile == "" && config.TagPreset != PresetBasic && config.TagPreset != PresetExtras {
		return fmt.Errorf("unknown tag preset %q, expected %q or %q", config.TagPreset, PresetBasic, PresetExtras)
	}

	if config.MaxBodyLen <= 0 {
		return fmt.Errorf("MAX_BODY_LEN must be positive, got %d", config.MaxBodyLen)
	}

	if config.MaxWarnings < 0 {
		return fmt.Errorf("MAX_WARNINGS must be non-negative, got %d", config.MaxWarnings)
	}

	return nil
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The address may be a URL or a bare "host:port". If no port is specified, port will be
// an empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	raw := config.HTTPServerAddress
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host, port = u.Hostname(), u.Port()
	if host == "" {
		err = fmt.Errorf("http server address %q has no host", config.HTTPServerAddress)
	}

	return
}
