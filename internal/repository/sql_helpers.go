package repository

import (
	"database/sql"
	"strings"
	"time"
)

// orderClause resolves a requested sort against a column whitelist,
// falling back to the given default for unknown fields.
func orderClause(columns map[string]string, sortBy, sortDirection, fallback string) string {
	column, ok := columns[strings.ToLower(sortBy)]
	if !ok {
		return fallback
	}
	if strings.EqualFold(sortDirection, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}

func toNullStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}
