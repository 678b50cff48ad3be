// Package bookings persists submitted intakes and orchestrates the
// submission side effects (payment session, confirmation email).
package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sealbook/notary-platform/internal/intake"
)

// Booking is one submitted intake awaiting (or past) payment.
type Booking struct {
	ID              uuid.UUID
	OrgID           string
	SessionID       string
	ClientEmail     string
	ClientName      string
	ServiceIDs      []string
	AppointmentDate string
	AppointmentTime string
	Timezone        string
	Status          string
	FormSnapshot    []byte
	CreatedAt       time.Time
}

// Booking statuses.
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCancelled      = "cancelled"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository provides persistence for bookings.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting mocks for tests.
func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, org_id, session_id, client_email, client_name, service_ids,
	appointment_date, appointment_time, timezone, status, form_snapshot, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create inserts a pending booking built from a submitted form.
func (r *Repository) Create(ctx context.Context, orgID, sessionID string, form intake.FormState) (*Booking, error) {
	snapshot, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("bookings: encode form snapshot: %w", err)
	}
	b := &Booking{
		ID:              uuid.New(),
		OrgID:           orgID,
		SessionID:       sessionID,
		ClientEmail:     form.Email,
		ClientName:      form.FirstName + " " + form.LastName,
		ServiceIDs:      form.ServiceIDs,
		AppointmentDate: form.AppointmentDate,
		AppointmentTime: form.AppointmentTime,
		Timezone:        form.Timezone,
		Status:          StatusPendingPayment,
		FormSnapshot:    snapshot,
		CreatedAt:       time.Now().UTC(),
	}
	_, err = r.db.Exec(ctx, insertBookingSQL,
		b.ID, b.OrgID, b.SessionID, b.ClientEmail, b.ClientName, b.ServiceIDs,
		b.AppointmentDate, b.AppointmentTime, b.Timezone, b.Status, b.FormSnapshot, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: insert: %w", err)
	}
	return b, nil
}

const getBookingSQL = `
SELECT id, org_id, session_id, client_email, client_name, service_ids,
	appointment_date, appointment_time, timezone, status, form_snapshot, created_at
FROM bookings WHERE id = $1 AND org_id = $2`

// GetForOrg loads a booking scoped to its org.
func (r *Repository) GetForOrg(ctx context.Context, orgID string, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.QueryRow(ctx, getBookingSQL, id, orgID).Scan(
		&b.ID, &b.OrgID, &b.SessionID, &b.ClientEmail, &b.ClientName, &b.ServiceIDs,
		&b.AppointmentDate, &b.AppointmentTime, &b.Timezone, &b.Status, &b.FormSnapshot, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: load %s: %w", id, err)
	}
	return &b, nil
}

const updateStatusSQL = `UPDATE bookings SET status = $3 WHERE id = $1 AND org_id = $2`

// UpdateStatus moves a booking between payment states.
func (r *Repository) UpdateStatus(ctx context.Context, orgID string, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, updateStatusSQL, id, orgID, status)
	if err != nil {
		return fmt.Errorf("bookings: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookings: booking %s not found for org %s", id, orgID)
	}
	return nil
}
