package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openfab/reservation-server/internal/model"
)

// ReservationRepo provides persistence for reservation records. Each
// reservation is an independent unit of consistency: no cross-record
// transactions are needed, and status updates target a single row. All
// timestamp fields are stored in UTC and assigned by the database.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, name, institution, phone, email, date, start_hour, end_hour, spaces, note, suggestion, status, created_at`

// Create inserts a new reservation and returns its store-assigned ID. The
// ID is a fresh UUID and created_at is filled in by the database; both are
// written back onto the passed record. The caller sets Status beforehand.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (string, error) {
	spaces, err := json.Marshal(res.Spaces)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	const q = `INSERT INTO reservations
		(id, name, institution, phone, email, date, start_hour, end_hour, spaces, note, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		id, res.Name, res.Institution, res.Phone, res.Email,
		res.Date, res.StartHour, res.EndHour, spaces, res.Note, res.Status,
	); err != nil {
		return "", err
	}
	res.ID = id
	// Query back the row to populate the server-assigned timestamp
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, id).Scan(&res.CreatedAt); err != nil {
		return "", err
	}
	return id, nil
}

// ListByStatus returns all reservations holding the given status, ordered
// by creation time descending. The public availability view calls this with
// the approved status only.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE status = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListAll returns every reservation regardless of status, newest first.
// Used by the administrative view.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// GetByID returns a single reservation or ErrNotFound when no record with
// the given ID exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateStatus applies a terminal decision to the targeted record. The
// update is a single atomic statement; concurrent updates to different
// records never interfere, and the last write wins for the same record.
// ErrNotFound is returned when the record disappeared between the caller's
// lookup and this write.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status, suggestion string) error {
	const q = `UPDATE reservations SET status = ?, suggestion = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, status, suggestion, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows can also mean the row already held exactly this
		// status and suggestion; confirm existence before reporting 404.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE id = ?`, id).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(sc rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var spaces []byte
	var note, suggestion sql.NullString
	if err := sc.Scan(
		&res.ID, &res.Name, &res.Institution, &res.Phone, &res.Email,
		&res.Date, &res.StartHour, &res.EndHour, &spaces,
		&note, &suggestion, &res.Status, &res.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spaces, &res.Spaces); err != nil {
		return nil, err
	}
	res.Note = note.String
	res.Suggestion = suggestion.String
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
