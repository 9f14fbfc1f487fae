package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

type SQLRecordsRepository struct {
	db DBTX
	d  Dialect
}

var _ RecordsRepository = (*SQLRecordsRepository)(nil)

func NewSQLRecordsRepository(db DBTX, d Dialect) *SQLRecordsRepository {
	return &SQLRecordsRepository{db: db, d: d}
}

const recordColumns = `
	id, unit_id, resident_id, record_date, record_time_hh, record_time_mm,
	shift, recorder_name, scene, scene_note, wakeup_flag,
	temp_am, bp_sys_am, bp_dia_am, pulse_am, spo2_am,
	temp_pm, bp_sys_pm, bp_dia_pm, pulse_pm, spo2_pm,
	meal_bf_done, meal_bf_score, meal_lu_done, meal_lu_score, meal_di_done, meal_di_score,
	med_morning, med_noon, med_evening, med_bed,
	note, share_handover, is_deleted, created_at, updated_at`

// 时刻なし的记录排在最后
const recordOrder = `(record_time_hh IS NULL), record_time_hh, record_time_mm, id`

type rowScanner interface {
	Scan(dest ...any) error
}

type vitalsCols struct {
	temp                sql.NullFloat64
	sys, dia, pulse, o2 sql.NullInt64
}

func (v *vitalsCols) dest() []any {
	return []any{&v.temp, &v.sys, &v.dia, &v.pulse, &v.o2}
}

func (v *vitalsCols) vitals() domain.Vitals {
	return domain.Vitals{
		Temperature: nullFloat(v.temp),
		Systolic:    nullInt(v.sys),
		Diastolic:   nullInt(v.dia),
		Pulse:       nullInt(v.pulse),
		SpO2:        nullInt(v.o2),
	}
}

func scanRecord(s rowScanner) (*domain.Record, error) {
	var (
		rec    domain.Record
		hh, mm sql.NullInt64
		am, pm vitalsCols
	)
	dest := []any{
		&rec.RecordID, &rec.UnitID, &rec.ResidentID, &rec.RecordDate, &hh, &mm,
		&rec.Shift, &rec.AuthorName, &rec.Scene, &rec.SceneNote, &rec.WakeupFlag,
	}
	dest = append(dest, am.dest()...)
	dest = append(dest, pm.dest()...)
	dest = append(dest,
		&rec.Meals.Breakfast.Done, &rec.Meals.Breakfast.Score,
		&rec.Meals.Lunch.Done, &rec.Meals.Lunch.Score,
		&rec.Meals.Dinner.Done, &rec.Meals.Dinner.Score,
		&rec.Medication.Morning, &rec.Medication.Noon, &rec.Medication.Evening, &rec.Medication.Bedtime,
		&rec.Note, &rec.Share, &rec.IsDeleted, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Time = timeOfDay(hh, mm)
	rec.VitalsAM = am.vitals()
	rec.VitalsPM = pm.vitals()
	return &rec, nil
}

func (r *SQLRecordsRepository) Insert(ctx context.Context, rec *domain.Record) (int64, error) {
	if rec == nil {
		return 0, fmt.Errorf("record is required")
	}

	hh, mm := timeArgs(rec.Time)
	am, pm := rec.VitalsAM, rec.VitalsPM
	q := `
		INSERT INTO daily_records (
			unit_id, resident_id, record_date, record_time_hh, record_time_mm,
			shift, recorder_name, scene, scene_note, wakeup_flag,
			temp_am, bp_sys_am, bp_dia_am, pulse_am, spo2_am,
			temp_pm, bp_sys_pm, bp_dia_pm, pulse_pm, spo2_pm,
			meal_bf_done, meal_bf_score, meal_lu_done, meal_lu_score, meal_di_done, meal_di_score,
			med_morning, med_noon, med_evening, med_bed,
			note, share_handover, is_deleted, created_at, updated_at
		) VALUES (
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?, ?
		)
		RETURNING id`
	args := []any{
		rec.UnitID, rec.ResidentID, rec.RecordDate, hh, mm,
		rec.Shift, rec.AuthorName, rec.Scene, rec.SceneNote, rec.WakeupFlag,
		floatArg(am.Temperature), intArg(am.Systolic), intArg(am.Diastolic), intArg(am.Pulse), intArg(am.SpO2),
		floatArg(pm.Temperature), intArg(pm.Systolic), intArg(pm.Diastolic), intArg(pm.Pulse), intArg(pm.SpO2),
		rec.Meals.Breakfast.Done, rec.Meals.Breakfast.Score,
		rec.Meals.Lunch.Done, rec.Meals.Lunch.Score,
		rec.Meals.Dinner.Done, rec.Meals.Dinner.Score,
		rec.Medication.Morning, rec.Medication.Noon, rec.Medication.Evening, rec.Medication.Bedtime,
		rec.Note, rec.Share, false, rec.CreatedAt, rec.UpdatedAt,
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, r.d.Rebind(q), args...).Scan(&id); err != nil {
		return 0, wrapErr("insert record", err)
	}
	rec.RecordID = id

	for i := range rec.Patrols {
		p := &rec.Patrols[i]
		p.RecordID = id
		if p.CreatedAt.IsZero() {
			p.CreatedAt = rec.CreatedAt
		}
		if err := r.insertPatrol(ctx, p); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *SQLRecordsRepository) insertPatrol(ctx context.Context, p *domain.Patrol) error {
	hh, mm := timeArgs(p.Time)
	q := `
		INSERT INTO daily_patrols (
			record_id, patrol_no, patrol_time_hh, patrol_time_mm,
			status, memo, intervened, door_opened, safety_checks, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, r.d.Rebind(q),
		p.RecordID, p.PatrolNo, hh, mm,
		p.Status, p.Memo, p.Intervened, p.DoorOpened, strings.Join(p.SafetyChecks, ","), p.CreatedAt,
	).Scan(&p.PatrolID)
	if err != nil {
		return wrapErr(fmt.Sprintf("insert patrol %d", p.PatrolNo), err)
	}
	return nil
}

func (r *SQLRecordsRepository) Get(ctx context.Context, recordID int64) (*domain.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM daily_records WHERE id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.d.Rebind(q), recordID))
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get record %d", recordID), err)
	}
	if err := r.attachPatrols(ctx, []*domain.Record{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLRecordsRepository) ListActive(ctx context.Context, residentID int64, date string) ([]*domain.Record, error) {
	q := `
		SELECT ` + recordColumns + `
		FROM daily_records
		WHERE resident_id = ? AND record_date = ? AND NOT is_deleted
		ORDER BY ` + recordOrder
	return r.list(ctx, "list records", q, residentID, date)
}

func (r *SQLRecordsRepository) ListActiveByUnit(ctx context.Context, unitID int64, date string) ([]*domain.Record, error) {
	q := `
		SELECT ` + recordColumns + `
		FROM daily_records
		WHERE unit_id = ? AND record_date = ? AND NOT is_deleted
		ORDER BY resident_id, ` + recordOrder
	return r.list(ctx, "list unit records", q, unitID, date)
}

func (r *SQLRecordsRepository) list(ctx context.Context, op, q string, args ...any) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	// 必须先关闭游标：SQLite 连接池只有一个连接
	rows.Close()

	if err := r.attachPatrols(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachPatrols 一次查询取回所有记录的巡视子记录
func (r *SQLRecordsRepository) attachPatrols(ctx context.Context, recs []*domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Record, len(recs))
	args := make([]any, 0, len(recs))
	for _, rec := range recs {
		byID[rec.RecordID] = rec
		args = append(args, rec.RecordID)
	}

	q := `
		SELECT id, record_id, patrol_no, patrol_time_hh, patrol_time_mm,
		       status, memo, intervened, door_opened, safety_checks, created_at
		FROM daily_patrols
		WHERE record_id IN (` + placeholders(len(args)) + `)
		ORDER BY record_id, patrol_no`
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return wrapErr("list patrols", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p      domain.Patrol
			hh, mm sql.NullInt64
			checks string
		)
		if err := rows.Scan(&p.PatrolID, &p.RecordID, &p.PatrolNo, &hh, &mm,
			&p.Status, &p.Memo, &p.Intervened, &p.DoorOpened, &checks, &p.CreatedAt); err != nil {
			return wrapErr("scan patrol", err)
		}
		p.Time = timeOfDay(hh, mm)
		p.SafetyChecks = splitList(checks)
		if rec, ok := byID[p.RecordID]; ok {
			rec.Patrols = append(rec.Patrols, p)
		}
	}
	return wrapErr("list patrols", rows.Err())
}

func (r *SQLRecordsRepository) SoftDelete(ctx context.Context, recordID int64, now time.Time) (bool, error) {
	q := `UPDATE daily_records SET is_deleted = ?, updated_at = ? WHERE id = ? AND NOT is_deleted`
	res, err := r.db.ExecContext(ctx, r.d.Rebind(q), true, now, recordID)
	if err != nil {
		return false, wrapErr(fmt.Sprintf("soft delete record %d", recordID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr("soft delete record", err)
	}
	return n > 0, nil
}

func (r *SQLRecordsRepository) LatestVitals(ctx context.Context, residentID int64) (*domain.Record, error) {
	q := `
		SELECT ` + recordColumns + `
		FROM daily_records
		WHERE resident_id = ? AND NOT is_deleted
		  AND (temp_am IS NOT NULL OR bp_sys_am IS NOT NULL OR bp_dia_am IS NOT NULL OR pulse_am IS NOT NULL OR spo2_am IS NOT NULL
		    OR temp_pm IS NOT NULL OR bp_sys_pm IS NOT NULL OR bp_dia_pm IS NOT NULL OR pulse_pm IS NOT NULL OR spo2_pm IS NOT NULL)
		ORDER BY record_date DESC, id DESC
		LIMIT 1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.d.Rebind(q), residentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("latest vitals", err)
	}
	return rec, nil
}
