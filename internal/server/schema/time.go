// Package schema declares the storage-row shape of each identity entity and
// converts between storage conventions (snake_case columns, SQL timestamp
// text, NULLs) and the domain shapes in models (camelCase fields, time.Time,
// explicit nil for absent). All timestamp parsing and formatting lives here;
// repositories and the adapter facade never touch the textual form.
package schema

import (
	"database/sql"
	"fmt"
	"time"
)

// sqlTimeLayout matches the text output PostgreSQL produces for timestamptz
// columns cast to text, e.g. "2024-03-07 15:04:05.123456+00".
const sqlTimeLayout = "2006-01-02 15:04:05.999999-07"

// acceptedTimeLayouts lists the timestamp spellings tolerated on read.
// Offsets with minutes and zone-less values both occur depending on the
// server's TimeZone setting.
var acceptedTimeLayouts = []string{
	sqlTimeLayout,
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999",
}

// ParseTime converts a SQL timestamp string into a time.Time in UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// FormatTime renders t as a SQL timestamp string in UTC, the only spelling
// this package writes back to the store.
func FormatTime(t time.Time) string {
	return t.UTC().Format(sqlTimeLayout)
}

// FormatNullTime renders an optional time for binding into a nullable
// timestamp column.
func FormatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}
