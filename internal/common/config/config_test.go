package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_LoadFromEnvAndDSN(t *testing.T) {
	t.Setenv("TESTDB_HOST", "db.internal")
	t.Setenv("TESTDB_PORT", "6543")
	t.Setenv("TESTDB_USER", "kaigo")
	t.Setenv("TESTDB_PASSWORD", "secret")
	t.Setenv("TESTDB_NAME", "care")
	t.Setenv("TESTDB_SSLMODE", "require")
	t.Setenv("TESTDB_LOCK_TIMEOUT", "3s")
	t.Setenv("TESTDB_STATEMENT_TIMEOUT", "15s")

	c := DatabaseConfig{Host: "localhost", Port: 5432}
	c.LoadFromEnv("TESTDB")

	assert.Equal(t, "db.internal", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, 3*time.Second, c.LockTimeout)
	dsn := c.GetDSN()
	assert.Contains(t, dsn, "host=db.internal port=6543 user=kaigo password=secret dbname=care sslmode=require")
	assert.Contains(t, dsn, "options='-c lock_timeout=3000 -c statement_timeout=15000'")
}

func TestDatabaseConfig_BadPortKeepsDefault(t *testing.T) {
	t.Setenv("TESTDB_PORT", "not-a-number")
	c := DatabaseConfig{Port: 5432}
	c.LoadFromEnv("TESTDB")
	assert.Equal(t, 5432, c.Port)
}

func TestSQLiteConfig_DSN(t *testing.T) {
	c := SQLiteConfig{Path: "data/kaigo.db", BusyTimeout: 2 * time.Second}
	dsn := c.GetDSN()
	assert.True(t, strings.HasPrefix(dsn, "file:data/kaigo.db?"))
	assert.Contains(t, dsn, "busy_timeout%282000%29")
	assert.Contains(t, dsn, "foreign_keys%281%29")
	assert.Contains(t, dsn, "_txlock=immediate")

	mem := SQLiteConfig{}
	assert.True(t, strings.HasPrefix(mem.GetDSN(), "file::memory:?"))
	assert.Contains(t, mem.GetDSN(), "busy_timeout%285000%29")
}

func TestRedisAndMQTTConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("R_ENABLED", "true")
	t.Setenv("R_ADDR", "redis:6379")
	t.Setenv("R_DB", "2")
	var r RedisConfig
	r.LoadFromEnv("R")
	assert.True(t, r.Enabled)
	assert.Equal(t, "redis:6379", r.Addr)
	assert.Equal(t, 2, r.DB)

	t.Setenv("M_ENABLED", "true")
	t.Setenv("M_BROKER", "tcp://mq:1883")
	t.Setenv("M_TOPIC", "kaigo/handovers")
	t.Setenv("M_QOS", "1")
	var m MQTTConfig
	m.LoadFromEnv("M")
	assert.True(t, m.Enabled)
	assert.Equal(t, "tcp://mq:1883", m.Broker)
	assert.Equal(t, "kaigo/handovers", m.Topic)
	assert.Equal(t, byte(1), m.QoS)
}
