package repository

import (
	"strconv"
	"strings"
)

// Dialect 屏蔽 PostgreSQL 与 SQLite 之间的占位符差异。
// SQL 统一用 "?" 书写，PostgreSQL 下重写为 $1..$n。
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect 由驱动名得到方言，未知值按 SQLite 处理
func ParseDialect(driver string) Dialect {
	if driver == string(DialectPostgres) {
		return DialectPostgres
	}
	return DialectSQLite
}

// Rebind 将 "?" 占位符转换为当前方言的格式（跳过字符串字面量）
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// placeholders 生成 n 个以逗号分隔的 "?"
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
