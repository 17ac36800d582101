package db

import (
	"database/sql"
	"time"
)

// NullIfEmpty helps store optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func NullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func NullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func NullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func NullTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func IntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func Int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func FloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func TimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

func BoolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func NullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
