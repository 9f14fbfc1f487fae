package repository

import (
	"database/sql"
	"strings"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func int64Arg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeArgs(t *domain.TimeOfDay) (any, any) {
	if t == nil {
		return nil, nil
	}
	return int64(t.Hour), int64(t.Minute)
}

func timeOfDay(hh, mm sql.NullInt64) *domain.TimeOfDay {
	if !hh.Valid || !mm.Valid {
		return nil
	}
	return &domain.TimeOfDay{Hour: int(hh.Int64), Minute: int(mm.Int64)}
}

// splitList 逗号分隔字符串 -> 切片（空串返回 nil）
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
