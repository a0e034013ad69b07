package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfab/reservation-server/internal/model"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var reservationRows = []string{
	"id", "name", "institution", "phone", "email", "date",
	"start_hour", "end_hour", "spaces", "note", "suggestion", "status", "created_at",
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(sqlmock.AnyArg(), "A", "", "", "a@x.com", "2024-06-01", 9, 10, []byte(`["room1"]`), "", model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM reservations WHERE id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	res := &model.Reservation{
		Name:      "A",
		Email:     "a@x.com",
		Date:      "2024-06-01",
		StartHour: 9,
		EndHour:   10,
		Spaces:    []string{"room1"},
		Status:    model.StatusPending,
	}
	id, err := repo.Create(context.Background(), res)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, created, res.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSurfacesStoreError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), &model.Reservation{
		Name: "A", Email: "a@x.com", Date: "2024-06-01",
		StartHour: 9, EndHour: 10, Spaces: []string{"room1"},
		Status: model.StatusPending,
	})
	require.Error(t, err)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDScansSpaces(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(reservationRows).AddRow(
		"res-1", "A", "Lycée X", "0600000000", "a@x.com", "2024-06-01",
		9, 10, []byte(`["room1","room2"]`), "note", nil, model.StatusPending, created,
	)
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id").
		WithArgs("res-1").
		WillReturnRows(rows)

	res, err := repo.GetByID(context.Background(), "res-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"room1", "room2"}, res.Spaces)
	assert.Equal(t, "note", res.Note)
	assert.Empty(t, res.Suggestion)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestListByStatusOrdersNewestFirst(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(reservationRows).
		AddRow("res-2", "B", "", "", "b@x.com", "2024-06-02", 14, 16, []byte(`["room1"]`), nil, nil, model.StatusApproved, now).
		AddRow("res-1", "A", "", "", "a@x.com", "2024-06-01", 9, 10, []byte(`["room1"]`), nil, nil, model.StatusApproved, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE status = .+ ORDER BY created_at DESC").
		WithArgs(model.StatusApproved).
		WillReturnRows(rows)

	out, err := repo.ListByStatus(context.Background(), model.StatusApproved)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "res-2", out[0].ID)
	assert.Equal(t, "res-1", out[1].ID)
}

func TestListAllEmpty(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	mock.ExpectQuery("SELECT .+ FROM reservations ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(reservationRows))

	out, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, out, "empty listing must encode as [] not null")
	assert.Len(t, out, 0)
}

func TestUpdateStatusTargetsSingleRow(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = ?, suggestion = ? WHERE id = ?")).
		WithArgs(model.StatusApproved, "", "res-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "res-1", model.StatusApproved, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations")).
		WithArgs(model.StatusDenied, "", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservations WHERE id = ?")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := repo.UpdateStatus(context.Background(), "missing", model.StatusDenied, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusIdempotentRewrite(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := NewReservationRepo(db)

	// MySQL reports zero affected rows when the values did not change; the
	// repo confirms the row exists before deciding the record is gone.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations")).
		WithArgs(model.StatusApproved, "", "res-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservations WHERE id = ?")).
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "res-1", model.StatusApproved, ""))
}
