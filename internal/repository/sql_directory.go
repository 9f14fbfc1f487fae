package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

type SQLDirectoryRepository struct {
	db DBTX
	d  Dialect
}

var _ DirectoryRepository = (*SQLDirectoryRepository)(nil)

func NewSQLDirectoryRepository(db DBTX, d Dialect) *SQLDirectoryRepository {
	return &SQLDirectoryRepository{db: db, d: d}
}

func (r *SQLDirectoryRepository) ListUnits(ctx context.Context, activeOnly bool) ([]*domain.Unit, error) {
	q := `SELECT id, name, is_active, created_at FROM units`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q))
	if err != nil {
		return nil, wrapErr("list units", err)
	}
	defer rows.Close()

	out := []*domain.Unit{}
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.UnitID, &u.Name, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, wrapErr("scan unit", err)
		}
		out = append(out, &u)
	}
	return out, wrapErr("list units", rows.Err())
}

func (r *SQLDirectoryRepository) GetUnit(ctx context.Context, unitID int64) (*domain.Unit, error) {
	q := `SELECT id, name, is_active, created_at FROM units WHERE id = ?`
	var u domain.Unit
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q), unitID).Scan(&u.UnitID, &u.Name, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get unit %d", unitID), err)
	}
	return &u, nil
}

func (r *SQLDirectoryRepository) CreateUnit(ctx context.Context, unit *domain.Unit) (int64, error) {
	if unit == nil || strings.TrimSpace(unit.Name) == "" {
		return 0, fmt.Errorf("unit name is required")
	}
	q := `INSERT INTO units (name, is_active, created_at) VALUES (?, ?, ?) RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(q), unit.Name, unit.IsActive, unit.CreatedAt).Scan(&id); err != nil {
		return 0, wrapErr("create unit", err)
	}
	unit.UnitID = id
	return id, nil
}

func (r *SQLDirectoryRepository) ListResidents(ctx context.Context, unitID int64, activeOnly bool) ([]*domain.Resident, error) {
	q := `
		SELECT id, unit_id, name, care_level, disease, is_active, created_at
		FROM residents
		WHERE unit_id = ?`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), unitID)
	if err != nil {
		return nil, wrapErr("list residents", err)
	}
	defer rows.Close()

	out := []*domain.Resident{}
	for rows.Next() {
		var res domain.Resident
		if err := rows.Scan(&res.ResidentID, &res.UnitID, &res.Name, &res.CareLevel, &res.Disease, &res.IsActive, &res.CreatedAt); err != nil {
			return nil, wrapErr("scan resident", err)
		}
		out = append(out, &res)
	}
	return out, wrapErr("list residents", rows.Err())
}

func (r *SQLDirectoryRepository) GetResident(ctx context.Context, residentID int64) (*domain.Resident, error) {
	q := `
		SELECT id, unit_id, name, care_level, disease, is_active, created_at
		FROM residents
		WHERE id = ?`
	var res domain.Resident
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q), residentID).Scan(
		&res.ResidentID, &res.UnitID, &res.Name, &res.CareLevel, &res.Disease, &res.IsActive, &res.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get resident %d", residentID), err)
	}
	return &res, nil
}

func (r *SQLDirectoryRepository) CreateResident(ctx context.Context, resident *domain.Resident) (int64, error) {
	if resident == nil || strings.TrimSpace(resident.Name) == "" {
		return 0, fmt.Errorf("resident name is required")
	}
	q := `
		INSERT INTO residents (unit_id, name, care_level, disease, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q),
		resident.UnitID, resident.Name, resident.CareLevel, resident.Disease, resident.IsActive, resident.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("create resident", err)
	}
	resident.ResidentID = id
	return id, nil
}
