package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "DRISHTI"

// ConfigError reports a setting the service cannot start without.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	CORS    CORSConfig    `mapstructure:"cors"`
	ChatAPI ChatAPIConfig `mapstructure:"chat_api"`
	Videos  VideosConfig  `mapstructure:"videos"`
	Doubt   DoubtConfig   `mapstructure:"doubt"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ChatAPIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	User           string `mapstructure:"user"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type VideosConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

type DoubtConfig struct {
	WidgetURL string `mapstructure:"widget_url"`
}

type SessionConfig struct {
	IdleMinutes int `mapstructure:"idle_minutes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("chat_api.base_url", "https://testing.drishtigpt.com/v1/chat-messages")
	v.SetDefault("chat_api.api_key", "")
	v.SetDefault("chat_api.user", "abc-123")
	v.SetDefault("chat_api.timeout_seconds", 60)
	v.SetDefault("videos.catalog_path", "")
	v.SetDefault("doubt.widget_url", "")
	v.SetDefault("session.idle_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadDotEnv copies the variables of the given .env files (default ".env") into the
// process environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
		log.Printf("[Config] loaded environment from %s", f)
	}
	return nil
}

// Load reads config.yaml from ./config or the working directory, then the
// environment (DRISHTI_CHAT_API_API_KEY and friends). The config file is optional.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		log.Println("[Config] config.yaml not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// a comma separated env value arrives as one string
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ChatAPI.APIKey) == "" {
		return &ConfigError{Key: "chat_api.api_key", Reason: "is required (set " + EnvPrefix + "_CHAT_API_API_KEY)"}
	}
	if c.ChatAPI.BaseURL == "" {
		return &ConfigError{Key: "chat_api.base_url", Reason: "must not be empty"}
	}
	if c.ChatAPI.TimeoutSeconds <= 0 {
		return &ConfigError{Key: "chat_api.timeout_seconds", Reason: "must be positive"}
	}
	if c.Session.IdleMinutes <= 0 {
		return &ConfigError{Key: "session.idle_minutes", Reason: "must be positive"}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
