package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig PostgreSQL 连接配置
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MaxIdle  int    `yaml:"max_idle"`
	// LockTimeout 行锁等待上限，超时后调用方得到可重试错误而不是挂起
	LockTimeout time.Duration `yaml:"lock_timeout"`
	// StatementTimeout 单条语句上限（57014 同样归为可重试）
	StatementTimeout time.Duration `yaml:"statement_timeout"`
}

// GetDSN 获取 lib/pq 连接字符串
func (c *DatabaseConfig) GetDSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	var opts []string
	if c.LockTimeout > 0 {
		opts = append(opts, fmt.Sprintf("-c lock_timeout=%d", c.LockTimeout.Milliseconds()))
	}
	if c.StatementTimeout > 0 {
		opts = append(opts, fmt.Sprintf("-c statement_timeout=%d", c.StatementTimeout.Milliseconds()))
	}
	if len(opts) > 0 {
		dsn += " options='" + strings.Join(opts, " ") + "'"
	}
	return dsn
}

// LoadFromEnv 从环境变量覆盖配置，prefix 例如 "DB"
func (c *DatabaseConfig) LoadFromEnv(prefix string) {
	if v := os.Getenv(prefix + "_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv(prefix + "_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(prefix + "_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv(prefix + "_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv(prefix + "_NAME"); v != "" {
		c.Database = v
	}
	if v := os.Getenv(prefix + "_SSLMODE"); v != "" {
		c.SSLMode = v
	}
	if v := os.Getenv(prefix + "_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LockTimeout = d
		}
	}
	if v := os.Getenv(prefix + "_STATEMENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.StatementTimeout = d
		}
	}
}

// SQLiteConfig 嵌入式数据库配置（默认存储）
type SQLiteConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// GetDSN 生成 modernc.org/sqlite 的 DSN：开启外键、设置 busy_timeout、事务使用 IMMEDIATE 锁
func (c *SQLiteConfig) GetDSN() string {
	busy := c.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")

	path := c.Path
	if path == "" || path == ":memory:" {
		// 内存库只存在于单个连接内，NewSQLiteDB 会把连接池限制为 1
		return "file::memory:?" + q.Encode()
	}
	return "file:" + path + "?" + q.Encode()
}

// LoadFromEnv 从环境变量加载 SQLite 配置
func (c *SQLiteConfig) LoadFromEnv(prefix string) {
	if v := os.Getenv(prefix + "_PATH"); v != "" {
		c.Path = v
	}
	if v := os.Getenv(prefix + "_BUSY_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.BusyTimeout = time.Duration(ms) * time.Millisecond
		}
	}
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoadFromEnv 从环境变量加载 Redis 配置
func (c *RedisConfig) LoadFromEnv(prefix string) {
	if v := os.Getenv(prefix + "_ENABLED"); v != "" {
		c.Enabled = v == "true"
	}
	if v := os.Getenv(prefix + "_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(prefix + "_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv(prefix + "_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.DB = db
		}
	}
}

// MQTTConfig MQTT 配置
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

// LoadFromEnv 从环境变量加载 MQTT 配置
func (c *MQTTConfig) LoadFromEnv(prefix string) {
	if v := os.Getenv(prefix + "_ENABLED"); v != "" {
		c.Enabled = v == "true"
	}
	if v := os.Getenv(prefix + "_BROKER"); v != "" {
		c.Broker = v
	}
	if v := os.Getenv(prefix + "_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(prefix + "_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv(prefix + "_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv(prefix + "_TOPIC"); v != "" {
		c.Topic = v
	}
	if v := os.Getenv(prefix + "_QOS"); v != "" {
		if q, err := strconv.Atoi(v); err == nil && q >= 0 && q <= 2 {
			c.QoS = byte(q)
		}
	}
}
