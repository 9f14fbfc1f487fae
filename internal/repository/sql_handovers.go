package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

type SQLHandoversRepository struct {
	db DBTX
	d  Dialect
}

var _ HandoversRepository = (*SQLHandoversRepository)(nil)

func NewSQLHandoversRepository(db DBTX, d Dialect) *SQLHandoversRepository {
	return &SQLHandoversRepository{db: db, d: d}
}

const handoverColumns = `id, unit_id, resident_id, handover_date, content, created_by, source_record_id, is_deleted, created_at`

func scanHandover(s rowScanner) (*domain.HandoverEntry, error) {
	var (
		h        domain.HandoverEntry
		resident sql.NullInt64
		source   sql.NullInt64
	)
	if err := s.Scan(&h.HandoverID, &h.UnitID, &resident, &h.HandoverDate, &h.Content,
		&h.AuthorName, &source, &h.IsDeleted, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.ResidentID = nullInt64(resident)
	h.SourceRecordID = nullInt64(source)
	return &h, nil
}

func (r *SQLHandoversRepository) Insert(ctx context.Context, h *domain.HandoverEntry) (int64, error) {
	if h == nil {
		return 0, fmt.Errorf("handover is required")
	}
	q := `
		INSERT INTO handovers (unit_id, resident_id, handover_date, content, created_by, source_record_id, is_deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q),
		h.UnitID, int64Arg(h.ResidentID), h.HandoverDate, h.Content, h.AuthorName, int64Arg(h.SourceRecordID), false, h.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("insert handover", err)
	}
	h.HandoverID = id
	return id, nil
}

// InsertFromRecord 依赖部分唯一索引 idx_handovers_source：
// ON CONFLICT DO NOTHING 不返回行即表示该记录已经联动过
func (r *SQLHandoversRepository) InsertFromRecord(ctx context.Context, h *domain.HandoverEntry) (*int64, error) {
	if h == nil || h.SourceRecordID == nil {
		return nil, fmt.Errorf("source_record_id is required")
	}
	q := `
		INSERT INTO handovers (unit_id, resident_id, handover_date, content, created_by, source_record_id, is_deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_record_id) WHERE source_record_id IS NOT NULL DO NOTHING
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q),
		h.UnitID, int64Arg(h.ResidentID), h.HandoverDate, h.Content, h.AuthorName, *h.SourceRecordID, false, h.CreatedAt,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil && IsUniqueViolation(err):
		return nil, nil
	case err != nil:
		return nil, wrapErr("propagate handover", err)
	}
	h.HandoverID = id
	return &id, nil
}

func (r *SQLHandoversRepository) Get(ctx context.Context, handoverID int64) (*domain.HandoverEntry, error) {
	q := `SELECT ` + handoverColumns + ` FROM handovers WHERE id = ?`
	h, err := scanHandover(r.db.QueryRowContext(ctx, r.d.Rebind(q), handoverID))
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get handover %d", handoverID), err)
	}
	return h, nil
}

func (r *SQLHandoversRepository) ListForDate(ctx context.Context, unitID int64, date string) ([]*domain.HandoverEntry, error) {
	q := `
		SELECT ` + handoverColumns + `
		FROM handovers
		WHERE unit_id = ? AND handover_date = ? AND NOT is_deleted
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), unitID, date)
	if err != nil {
		return nil, wrapErr("list handovers", err)
	}
	defer rows.Close()

	out := []*domain.HandoverEntry{}
	for rows.Next() {
		h, err := scanHandover(rows)
		if err != nil {
			return nil, wrapErr("scan handover", err)
		}
		out = append(out, h)
	}
	return out, wrapErr("list handovers", rows.Err())
}

func (r *SQLHandoversRepository) SoftDelete(ctx context.Context, handoverID int64) (bool, error) {
	q := `UPDATE handovers SET is_deleted = ? WHERE id = ? AND NOT is_deleted`
	res, err := r.db.ExecContext(ctx, r.d.Rebind(q), true, handoverID)
	if err != nil {
		return false, wrapErr(fmt.Sprintf("soft delete handover %d", handoverID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr("soft delete handover", err)
	}
	return n > 0, nil
}

func (r *SQLHandoversRepository) CountBySource(ctx context.Context, recordID int64) (int, error) {
	q := `SELECT COUNT(*) FROM handovers WHERE source_record_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(q), recordID).Scan(&n); err != nil {
		return 0, wrapErr("count handovers by source", err)
	}
	return n, nil
}
