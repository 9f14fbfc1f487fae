package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound 目标行不存在（或外键指向的行不存在）
	ErrNotFound = errors.New("not found")
	// ErrStorageUnavailable 锁等待超时、连接失败等可重试错误
	ErrStorageUnavailable = errors.New("storage unavailable, please retry")
)

// PostgreSQL SQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgLockNotAvailable    = "55P03"
	pgQueryCanceled       = "57014"
	pgClassConnection     = "08"
	pgClassResources      = "53"
)

// IsUniqueViolation 是否唯一约束冲突
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		c := liteErr.Code()
		return c == sqlite3.SQLITE_CONSTRAINT_UNIQUE || c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// IsForeignKeyViolation 是否外键约束冲突
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// IsRetryable 是否属于锁/超时/连接类的暂时性错误
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgSerialization, pgDeadlock, pgLockNotAvailable, pgQueryCanceled:
			return true
		}
		class := string(pqErr.Code.Class())
		return class == pgClassConnection || class == pgClassResources
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

// wrapErr 统一包装存储错误：暂时性错误附带 ErrStorageUnavailable，外键缺失附带 ErrNotFound
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrStorageUnavailable):
		return fmt.Errorf("failed to %s: %w", op, err)
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to %s: %w", op, ErrNotFound)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("failed to %s: %w (%w)", op, ErrNotFound, err)
	case IsRetryable(err):
		return fmt.Errorf("failed to %s: %w (%w)", op, ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
