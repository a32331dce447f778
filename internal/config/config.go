package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config represents application configuration loaded from config.yaml with
// environment variable overrides.
type Config struct {
	AppEnv  string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`
	Server  struct {
		Addr         string        `mapstructure:"ADDR"`
		ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
		WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
	} `mapstructure:"HTTP_SERVER"`
	TLS struct {
		Enable   bool   `mapstructure:"ENABLE"`
		CertPath string `mapstructure:"CERT_PATH"`
		KeyPath  string `mapstructure:"KEY_PATH"`
	} `mapstructure:"TLS"`
	Database struct {
		Type     string `mapstructure:"TYPE"`
		Host     string `mapstructure:"HOST"`
		Port     string `mapstructure:"PORT"`
		DBName   string `mapstructure:"DBNAME"`
		User     string `mapstructure:"USER"`
		Password string `mapstructure:"PASSWORD"`
		SSLMode  string `mapstructure:"SSLMODE"`
	} `mapstructure:"DATABASE"`
	Redis struct {
		Addr     string `mapstructure:"ADDR"`
		Password string `mapstructure:"PASSWORD"`
		DB       int    `mapstructure:"DB"`
	} `mapstructure:"REDIS"`
	Scorer struct {
		URL          string        `mapstructure:"URL"`
		Timeout      time.Duration `mapstructure:"TIMEOUT"`
		ModelVersion string        `mapstructure:"MODEL_VERSION"`
	} `mapstructure:"SCORER"`
	Session struct {
		TTL time.Duration `mapstructure:"TTL"`
	} `mapstructure:"SESSION"`
	Bootstrap struct {
		Enable         bool   `mapstructure:"ENABLE"`
		AdminUsername  string `mapstructure:"ADMIN_USERNAME"`
		AdminPassword  string `mapstructure:"ADMIN_PASSWORD"`
		AdminEmail     string `mapstructure:"ADMIN_EMAIL"`
		ServiceName    string `mapstructure:"SERVICE_NAME"`
		ServiceContact string `mapstructure:"SERVICE_CONTACT"`
	} `mapstructure:"BOOTSTRAP"`
}

var Module = fx.Module("config", fx.Provide(Load))

// Load reads configuration from config.yaml (if present) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "moderation-controlplane")
	v.SetDefault("HTTP_SERVER.ADDR", ":8080")
	v.SetDefault("HTTP_SERVER.READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_SERVER.WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("DATABASE.TYPE", "sqlite")
	v.SetDefault("DATABASE.DBNAME", "moderation.db")
	v.SetDefault("REDIS.ADDR", "127.0.0.1:6379")
	v.SetDefault("SCORER.URL", "http://127.0.0.1:9000")
	v.SetDefault("SCORER.TIMEOUT", 30*time.Second)
	v.SetDefault("SCORER.MODEL_VERSION", "unitary/toxic-bert")
	v.SetDefault("SESSION.TTL", 7*24*time.Hour)
	v.SetDefault("BOOTSTRAP.ENABLE", false)
	v.SetDefault("BOOTSTRAP.ADMIN_USERNAME", "moderator")
	v.SetDefault("BOOTSTRAP.ADMIN_EMAIL", "moderator@example.com")
	v.SetDefault("BOOTSTRAP.SERVICE_NAME", "Demo Service")
	v.SetDefault("BOOTSTRAP.SERVICE_CONTACT", "demo@example.com")
}
