package config

import (
	"fmt"
	"os"
	"time"

	commoncfg "github.com/kaigoApp/kaigo-app/internal/common/config"

	"gopkg.in/yaml.v3"
)

// Config kaigo-data（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	// DBDriver "sqlite"（默认，嵌入式）或 "postgres"
	DBDriver string                   `yaml:"db_driver"`
	Database commoncfg.DatabaseConfig `yaml:"database"`
	SQLite   commoncfg.SQLiteConfig   `yaml:"sqlite"`
	// OpTimeout 单次存储操作的上限（包括等待连接和锁）
	OpTimeout time.Duration `yaml:"op_timeout"`

	Redis commoncfg.RedisConfig `yaml:"redis"`
	MQTT  commoncfg.MQTTConfig  `yaml:"mqtt"`

	Notify NotifyConfig `yaml:"notify"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// NotifyConfig 申し送り事件推送配置
type NotifyConfig struct {
	// HandoverStream Redis Stream 名称（Redis 启用时生效）
	HandoverStream string `yaml:"handover_stream"`
	// WebhookURL 为空时不推送
	WebhookURL string `yaml:"webhook_url"`
}

// Default 返回本地开发默认值
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = ":8080"
	cfg.DBDriver = "sqlite"
	cfg.SQLite.Path = "data/kaigo.db"
	cfg.SQLite.BusyTimeout = 5 * time.Second
	cfg.OpTimeout = 10 * time.Second

	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "kaigo"
	cfg.Database.SSLMode = "disable"
	cfg.Database.LockTimeout = 5 * time.Second
	cfg.Database.StatementTimeout = 30 * time.Second

	cfg.Redis.Addr = "localhost:6379"

	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "kaigo-data"
	cfg.MQTT.Topic = "kaigo/handovers"

	cfg.Notify.HandoverStream = "kaigo:handovers"

	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Load 加载配置，优先级：环境变量 > CONFIG_FILE(YAML) > 默认值。
// .env.local / .env 会先被读入环境（不覆盖已存在的环境变量）。
func Load() (*Config, error) {
	LoadDotEnv()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查组合配置是否可用
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("STORE_OP_TIMEOUT must be positive")
	}
	if c.MQTT.Enabled && c.MQTT.Topic == "" {
		return fmt.Errorf("MQTT_TOPIC is required when MQTT is enabled")
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.Database.LoadFromEnv("DB")
	cfg.SQLite.LoadFromEnv("SQLITE")
	if v := os.Getenv("STORE_OP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OpTimeout = d
		}
	}

	cfg.Redis.LoadFromEnv("REDIS")
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.Notify.HandoverStream = getEnv("HANDOVER_STREAM", cfg.Notify.HandoverStream)
	cfg.Notify.WebhookURL = getEnv("WEBHOOK_URL", cfg.Notify.WebhookURL)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
