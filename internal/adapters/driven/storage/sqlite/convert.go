package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// timeLayout is the stored timestamp format: UTC, millisecond
// precision, fixed width. Fixed width keeps string comparison in SQL
// equivalent to chronological comparison, which the listing order and
// due-card queries rely on.
const timeLayout = "2006-01-02T15:04:05.000Z"

// formatTime renders t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatNullableTime renders an optional timestamp for storage.
func formatNullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// parseTime reads a stored timestamp. Accepts any RFC 3339 string so
// rows written by other writers still load.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing timestamp %q: %v", domain.ErrSerialization, s, err)
	}
	return t.UTC(), nil
}

// parseNullableTime reads an optional stored timestamp.
func parseNullableTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullString converts an optional string for storage.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a stored optional string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nullInt converts an optional int for storage.
func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// fromNullInt converts a stored optional int.
func fromNullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}

// boolToInt converts a bool for storage as INTEGER 0/1.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
