package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := `SELECT * FROM t WHERE a = ? AND b = '?' AND c IN (?, ?)`

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = $1 AND b = '?' AND c IN ($2, $3)`, DialectPostgres.Rebind(q))
	assert.Equal(t, "SELECT 1", DialectPostgres.Rebind("SELECT 1"))
}

func TestParseDialect(t *testing.T) {
	assert.Equal(t, DialectPostgres, ParseDialect("postgres"))
	assert.Equal(t, DialectSQLite, ParseDialect("sqlite"))
	assert.Equal(t, DialectSQLite, ParseDialect(""))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
