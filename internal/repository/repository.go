package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Repositories 绑定到同一个 DBTX（*sql.DB 或 *sql.Tx）的一组 Repository
type Repositories struct {
	Directory        DirectoryRepository
	Records          RecordsRepository
	Handovers        HandoversRepository
	Acknowledgements AcknowledgementsRepository
}

func newRepositories(db DBTX, d Dialect) *Repositories {
	return &Repositories{
		Directory:        NewSQLDirectoryRepository(db, d),
		Records:          NewSQLRecordsRepository(db, d),
		Handovers:        NewSQLHandoversRepository(db, d),
		Acknowledgements: NewSQLAcknowledgementsRepository(db, d),
	}
}

// Store 持有连接池；非事务读写直接用内嵌的 Repositories
type Store struct {
	*Repositories
	DB      *sql.DB
	Dialect Dialect
}

func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{
		Repositories: newRepositories(db, d),
		DB:           db,
		Dialect:      d,
	}
}

// InTx 在一个事务内执行 fn，fn 拿到的 Repositories 全部绑定该事务
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	err := WithTx(ctx, s.DB, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, newRepositories(tx, s.Dialect))
	})
	// fn 内部返回的错误已经分类，这里只补充 BEGIN / COMMIT 阶段的锁等待错误
	if err != nil && !errors.Is(err, ErrStorageUnavailable) && IsRetryable(err) {
		return wrapErr("run transaction", err)
	}
	return err
}
