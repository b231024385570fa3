package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Storage   *StorageConfig   `mapstructure:"storage"`
	AMQP      *AMQPConfig      `mapstructure:"amqp"`
	Telemetry *TelemetryConfig `mapstructure:"telemetry"`

	v        *viper.Viper
	watchMux sync.Mutex
	watching bool
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	LogLevel           string   `mapstructure:"log_level"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DB           string `mapstructure:"db"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type StorageConfig struct {
	Root           string `mapstructure:"root"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type AMQPConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

var defaults = map[string]interface{}{
	"api.environment":          "development",
	"api.port":                 "4000",
	"api.base_url":             "localhost:4000",
	"api.allowed_cors_domains": []string{"http://localhost:3000"},
	"api.jwt_signing_key":      "",
	"api.log_level":            "",
	"gin.mode":                 "debug",
	"postgres.host":            "localhost",
	"postgres.port":            "5432",
	"postgres.user":            "postgres",
	"postgres.password":        "",
	"postgres.db":              "eloquence",
	"postgres.sslmode":         "disable",
	"postgres.max_open_conns":  20,
	"postgres.max_idle_conns":  5,
	"storage.root":             "./storage",
	"storage.max_upload_bytes": 10 << 20,
	"amqp.url":                 "",
	"amqp.exchange":            "eloquence.events",
	"amqp.routing_key":         "eloquence",
	"telemetry.otlp_endpoint":  "",
	"telemetry.service_name":   "eloquence-api",
}

// Load reads the YAML file at path. Every key can be overridden by an
// environment variable named after it, e.g. POSTGRES_HOST for postgres.host.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	conf.v = v

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config -> %w", err)
	}

	return conf, nil
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.NotNil),
		validation.Field(&c.Gin, validation.NotNil),
		validation.Field(&c.Postgres, validation.NotNil),
		validation.Field(&c.Storage, validation.NotNil),
		validation.Field(&c.AMQP, validation.NotNil),
		validation.Field(&c.Telemetry, validation.NotNil),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(
		c.API,
		validation.Field(&c.API.Environment, validation.Required, validation.In("development", "test", "production")),
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.API.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// OnChange watches the config file and calls fn with the reloaded config
// after every successful reload. Invalid reloads are logged and ignored.
func (c *AppConfig) OnChange(fn func(conf *AppConfig)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		conf, err := decode(c.v)
		if err != nil {
			zap.L().Warn("ignoring config reload", zap.String("file", e.Name), zap.Error(err))
			return
		}
		fn(conf)
	})

	c.watchMux.Lock()
	defer c.watchMux.Unlock()
	if !c.watching {
		c.v.WatchConfig()
		c.watching = true
	}
}
