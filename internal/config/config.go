package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	BodyLimitMB    int    `mapstructure:"body_limit_mb"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI              string `mapstructure:"uri"`
	Database         string `mapstructure:"database"`
	ConnectMaxSecond int    `mapstructure:"connect_max_seconds"`
}

type StorageConf struct {
	Driver     string `mapstructure:"driver"` // "local" or "s3"
	UploadDir  string `mapstructure:"upload_dir"`
	PublicPath string `mapstructure:"public_path"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type OllamaConf struct {
	URI             string `mapstructure:"uri"`
	DefaultModel    string `mapstructure:"default_model"`
	TimeoutSecond   int    `mapstructure:"timeout_seconds"`
	BreakerFailures uint32 `mapstructure:"breaker_failures"`
}

type RedisConf struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	ModelTTLSecond int    `mapstructure:"model_cache_ttl_seconds"`
}

type SweepConf struct {
	Enabled        bool `mapstructure:"enabled"`
	IntervalMinute int  `mapstructure:"interval_minutes"`
	GraceMinute    int  `mapstructure:"grace_minutes"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Mongo   MongoConf   `mapstructure:"mongodb"`
	Storage StorageConf `mapstructure:"storage"`
	AWS     AWSConf     `mapstructure:"aws"`
	Ollama  OllamaConf  `mapstructure:"ollama"`
	Redis   RedisConf   `mapstructure:"redis"`
	Sweep   SweepConf   `mapstructure:"sweep"`
	Log     struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	ConnectMax      time.Duration
	OllamaTimeout   time.Duration
	ModelCacheTTL   time.Duration
	SweepInterval   time.Duration
	SweepGrace      time.Duration
}

// Load reads the yaml config at path and applies environment overrides.
// A missing file is not fatal: defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	// map nested keys onto env vars: app.port -> APP_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 5003)
	v.SetDefault("app.body_limit_mb", 25)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("mongodb.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongodb.database", "nss_gallery")
	v.SetDefault("mongodb.connect_max_seconds", 30)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.public_path", "/uploads")
	v.SetDefault("ollama.uri", "http://127.0.0.1:11434")
	v.SetDefault("ollama.default_model", "llama3")
	v.SetDefault("ollama.timeout_seconds", 60)
	v.SetDefault("ollama.breaker_failures", 5)
	v.SetDefault("redis.model_cache_ttl_seconds", 60)
	v.SetDefault("sweep.enabled", false)
	v.SetDefault("sweep.interval_minutes", 60)
	v.SetDefault("sweep.grace_minutes", 60)

	if err := v.ReadInConfig(); err != nil {
		// run on defaults if the file simply isn't there
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.ConnectMax = time.Duration(cfg.Mongo.ConnectMaxSecond) * time.Second
	cfg.OllamaTimeout = time.Duration(cfg.Ollama.TimeoutSecond) * time.Second
	cfg.ModelCacheTTL = time.Duration(cfg.Redis.ModelTTLSecond) * time.Second
	cfg.SweepInterval = time.Duration(cfg.Sweep.IntervalMinute) * time.Minute
	cfg.SweepGrace = time.Duration(cfg.Sweep.GraceMinute) * time.Minute
	return &cfg, nil
}
