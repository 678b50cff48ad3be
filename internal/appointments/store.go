// Package appointments serves the read side of the dashboards: upcoming
// bookings rendered in whatever timezone the viewer is in.
package appointments

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sealbook/notary-platform/internal/tz"
)

// Appointment is one dashboard row. Time is stored in the timezone the
// client picked it in; LocalTime is that same wall clock re-rendered for
// the viewer and never written back.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Timezone    string    `json:"timezone"`
	Status      string    `json:"status"`
	LocalTime   string    `json:"local_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store reads bookings for dashboard display.
type Store struct {
	db *sql.DB
}

// NewStore wraps a sql.DB. Returns nil when no database is configured so
// callers can feature-gate the dashboards.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

const listUpcomingSQL = `
SELECT id, client_name, client_email, appointment_date, appointment_time, timezone, status, created_at
FROM bookings
WHERE org_id = $1 AND appointment_date >= $2
ORDER BY appointment_date, appointment_time
LIMIT $3`

// ListUpcoming returns bookings for an org from a given date forward, with
// each appointment's wall-clock time converted into viewerZone. Conversion
// is display-only and best-effort: unresolvable zones leave the stored
// time untouched.
func (s *Store) ListUpcoming(ctx context.Context, orgID, fromDate, viewerZone string, limit int) ([]Appointment, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("appointments: store not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, listUpcomingSQL, orgID, fromDate, limit)
	if err != nil {
		return nil, fmt.Errorf("appointments: list upcoming: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.ClientName, &a.ClientEmail, &a.Date, &a.Time, &a.Timezone, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("appointments: scan row: %w", err)
		}
		a.LocalTime = tz.ConvertWallClock(a.Time, a.Timezone, viewerZone)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate rows: %w", err)
	}
	return out, nil
}
