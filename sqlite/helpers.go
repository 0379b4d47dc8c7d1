package sqlite

import (
	"time"

	"github.com/fwojciec/harvest"
)

// Timestamps are stored as RFC 3339 text in UTC so they sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, harvest.Errorf(harvest.EINTERNAL, "invalid %s %q: %v", column, value, err)
	}
	return t, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
