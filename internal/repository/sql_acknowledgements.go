package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

type SQLAcknowledgementsRepository struct {
	db DBTX
	d  Dialect
}

var _ AcknowledgementsRepository = (*SQLAcknowledgementsRepository)(nil)

func NewSQLAcknowledgementsRepository(db DBTX, d Dialect) *SQLAcknowledgementsRepository {
	return &SQLAcknowledgementsRepository{db: db, d: d}
}

// Toggle 先删后插：
//  1. DELETE ... RETURNING 有行 -> removed
//  2. INSERT ... ON CONFLICT DO NOTHING RETURNING 有行 -> added
//  3. 插入冲突说明并发的 toggle 已经加上，本次按取消处理再删一次 -> removed
func (r *SQLAcknowledgementsRepository) Toggle(ctx context.Context, handoverID int64, person, markType string, now time.Time) (domain.ToggleResult, error) {
	deleted, err := r.delete(ctx, handoverID, person, markType)
	if err != nil {
		return "", err
	}
	if deleted {
		return domain.ToggleRemoved, nil
	}

	q := `
		INSERT INTO handover_reactions (handover_id, person_name, mark_type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (handover_id, person_name, mark_type) DO NOTHING
		RETURNING id`
	var id int64
	err = r.db.QueryRowContext(ctx, r.d.Rebind(q), handoverID, person, markType, now).Scan(&id)
	switch {
	case err == nil:
		return domain.ToggleAdded, nil
	case errors.Is(err, sql.ErrNoRows), IsUniqueViolation(err):
		if _, err := r.delete(ctx, handoverID, person, markType); err != nil {
			return "", err
		}
		return domain.ToggleRemoved, nil
	default:
		return "", wrapErr("add mark", err)
	}
}

func (r *SQLAcknowledgementsRepository) delete(ctx context.Context, handoverID int64, person, markType string) (bool, error) {
	q := `
		DELETE FROM handover_reactions
		WHERE handover_id = ? AND person_name = ? AND mark_type = ?
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q), handoverID, person, markType).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapErr("remove mark", err)
	}
	return true, nil
}

func (r *SQLAcknowledgementsRepository) List(ctx context.Context, handoverID int64, markType string) ([]domain.Acknowledgement, error) {
	q := `SELECT handover_id, person_name, mark_type, created_at FROM handover_reactions WHERE handover_id = ?`
	args := []any{handoverID}
	if markType != "" {
		q += ` AND mark_type = ?`
		args = append(args, markType)
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, wrapErr("list marks", err)
	}
	defer rows.Close()

	out := []domain.Acknowledgement{}
	for rows.Next() {
		var a domain.Acknowledgement
		if err := rows.Scan(&a.HandoverID, &a.PersonName, &a.MarkType, &a.CreatedAt); err != nil {
			return nil, wrapErr("scan mark", err)
		}
		out = append(out, a)
	}
	return out, wrapErr("list marks", rows.Err())
}

func (r *SQLAcknowledgementsRepository) Has(ctx context.Context, handoverID int64, person, markType string) (bool, error) {
	q := `
		SELECT 1 FROM handover_reactions
		WHERE handover_id = ? AND person_name = ? AND mark_type = ?`
	var one int
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q), handoverID, person, markType).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapErr("check mark", err)
	}
	return true, nil
}
