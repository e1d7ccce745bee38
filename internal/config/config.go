package config

import (
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the two source registers.
type DataConfig struct {
	Dir       string       `yaml:"dir" mapstructure:"dir"`
	Political SourceConfig `yaml:"political" mapstructure:"political"`
	Postal    SourceConfig `yaml:"postal" mapstructure:"postal"`
}

// SourceConfig describes one register file and where to download it from.
type SourceConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	URL       string `yaml:"url" mapstructure:"url"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	Charset   string `yaml:"charset" mapstructure:"charset"`
	Sheet     string `yaml:"sheet" mapstructure:"sheet"`
}

// DelimiterRune returns the CSV delimiter. "tab" and `\t` select a tab;
// an empty value selects a comma.
func (s SourceConfig) DelimiterRune() rune {
	switch s.Delimiter {
	case "":
		return ','
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r
}

// FetchConfig configures source downloads.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ServerConfig configures the query API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SWISSGEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.political.path", "data/political_communities.csv")
	v.SetDefault("data.political.url", "")
	v.SetDefault("data.political.delimiter", ",")
	v.SetDefault("data.political.charset", "utf-8")
	v.SetDefault("data.political.sheet", "")
	v.SetDefault("data.postal.path", "data/postal_communities.csv")
	v.SetDefault("data.postal.url", "")
	v.SetDefault("data.postal.delimiter", ",")
	v.SetDefault("data.postal.charset", "utf-8")
	v.SetDefault("data.postal.sheet", "")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "swissgeo/1.0")
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
// Modes: "load" (read local files), "fetch" (download sources), "serve".
func (c *Config) Validate(mode string) error {
	var problems []string

	checkSource := func(name string, s SourceConfig) {
		if s.Path == "" {
			problems = append(problems, "data."+name+".path is required")
		}
		if utf8.RuneCountInString(s.Delimiter) > 1 && s.Delimiter != "tab" && s.Delimiter != `\t` {
			problems = append(problems, "data."+name+".delimiter must be a single character")
		}
	}

	switch mode {
	case "load":
		checkSource("political", c.Data.Political)
		checkSource("postal", c.Data.Postal)
	case "fetch":
		if c.Data.Political.URL == "" {
			problems = append(problems, "data.political.url is required")
		}
		if c.Data.Postal.URL == "" {
			problems = append(problems, "data.postal.url is required")
		}
		if c.Data.Dir == "" {
			problems = append(problems, "data.dir is required")
		}
		if c.Fetch.MaxRetries < 1 || c.Fetch.MaxRetries > 10 {
			problems = append(problems, "fetch.max_retries must be between 1 and 10")
		}
		if c.Fetch.RatePerSec <= 0 {
			problems = append(problems, "fetch.rate_per_sec must be > 0")
		}
	case "serve":
		checkSource("political", c.Data.Political)
		checkSource("postal", c.Data.Postal)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s:\n  %s", mode, strings.Join(problems, "\n  "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
