package service

import (
	"slices"
	"strings"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

func requireName(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "is required")
	}
	return nil
}

func validateDate(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(domain.DateLayout, v); err != nil {
		return "", invalid(field, "must be YYYY-MM-DD, got %q", v)
	}
	return v, nil
}

// timePair 时、分必须同时给出或同时缺失
func timePair(field string, hour, minute *int) (*domain.TimeOfDay, error) {
	switch {
	case hour == nil && minute == nil:
		return nil, nil
	case hour == nil || minute == nil:
		return nil, invalid(field, "hour and minute must be given together")
	}
	t := domain.TimeOfDay{Hour: *hour, Minute: *minute}
	if t.Hour < 0 || t.Hour > 23 {
		return nil, invalid(field, "hour must be 0..23, got %d", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return nil, invalid(field, "minute must be 0..59, got %d", t.Minute)
	}
	return &t, nil
}

func oneOf(field, v string, allowed []string) error {
	if !slices.Contains(allowed, v) {
		return invalid(field, "unknown value %q", v)
	}
	return nil
}
