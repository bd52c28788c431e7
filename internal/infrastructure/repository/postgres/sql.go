package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// nullableDate drops the clock so DATE columns round-trip exactly.
func nullableDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := daterange.Day(*value)
	return &v
}
