package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"app"`
	Paths struct {
		Draft     string `mapstructure:"draft"`
		Registry  string `mapstructure:"registry"`
		Templates string `mapstructure:"templates"`
		Output    string `mapstructure:"output"`
		Uploads   string `mapstructure:"uploads"`
	} `mapstructure:"paths"`
	Chrome struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"chrome"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// LoadConfig reads an optional .env and config.yaml from the working
// directory. Environment variables override both.
func LoadConfig() (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using defaults")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		slog.Debug("config.yaml not found, using environment only", "error", err)
	}

	setDefaults(v)

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.addr", "PORTFOLIO_ADDR")
	v.BindEnv("chrome.path", "PORTFOLIO_CHROME_PATH", "CHROME_PATH")
	v.BindEnv("db.dsn", "PORTFOLIO_DATABASE_URL")
	v.BindEnv("log.level", "PORTFOLIO_LOG_LEVEL")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.addr", "127.0.0.1:3000")
	v.SetDefault("paths.draft", "portfolio_data.json")
	v.SetDefault("paths.registry", "portfolios_registrados.json")
	v.SetDefault("paths.templates", "templates")
	v.SetDefault("paths.output", "output")
	v.SetDefault("paths.uploads", "uploads")
	v.SetDefault("chrome.path", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "portfolio.log")
}

// NewLogger returns a text logger writing to w at the named level. Unknown
// levels mean info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
