package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/openfab/reservation-server/internal/handler"
	"github.com/openfab/reservation-server/internal/model"
	"github.com/openfab/reservation-server/internal/repository"
	"github.com/openfab/reservation-server/internal/router"
	"github.com/openfab/reservation-server/internal/service"
	"github.com/openfab/reservation-server/internal/utils"
)

const testJWTSecret = "test-secret"

type stubAccounts struct {
	admin *model.Admin
}

func (a *stubAccounts) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if a.admin != nil && a.admin.Username == username {
		return a.admin, nil
	}
	return nil, repository.ErrNotFound
}

func (a *stubAccounts) Create(ctx context.Context, username, passwordHash string) error {
	a.admin = &model.Admin{ID: 1, Username: username, PasswordHash: passwordHash}
	return nil
}

// newAdminEcho wires the admin routes through the real auth middleware so
// tests cover the protected-route behaviour end to end.
func newAdminEcho(t *testing.T, store *stubStore) *echo.Echo {
	t.Helper()
	hash, err := utils.HashPassword("s3cret", 4)
	require.NoError(t, err)

	accounts := &stubAccounts{admin: &model.Admin{ID: 1, Username: "admin", PasswordHash: hash}}
	adminSvc := service.NewAdminService(accounts, testJWTSecret, 60, 4)
	resSvc := service.NewReservationService(store, &stubGate{result: true}, &stubDispatcher{}, nil, "admin@fablab.example")

	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	router.RegisterAdmin(e, NewAdminHandler(adminSvc, resSvc), testJWTSecret)
	return e
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doAuthJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newAdminEcho(t, &stubStore{})

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	e := newAdminEcho(t, &stubStore{})

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e := newAdminEcho(t, &stubStore{})

	rec := doAuthJSON(e, http.MethodGet, "/api/admin/reservations", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doAuthJSON(e, http.MethodGet, "/api/admin/reservations", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListIncludesAllStatuses(t *testing.T) {
	store := &stubStore{records: []model.Reservation{
		{ID: "r1", Name: "A", Email: "a@x.com", Status: model.StatusPending, Spaces: []string{"room1"}},
		{ID: "r2", Name: "B", Email: "b@x.com", Status: model.StatusDenied, Spaces: []string{"room2"}},
	}}
	e := newAdminEcho(t, store)
	token := login(t, e)

	rec := doAuthJSON(e, http.MethodGet, "/api/admin/reservations", token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	// Full contact details are visible on this channel.
	assert.Equal(t, "a@x.com", all[0]["email"])
}

func TestDecideApproves(t *testing.T) {
	store := &stubStore{records: []model.Reservation{
		{ID: "r1", Name: "A", Email: "a@x.com", Status: model.StatusPending, Spaces: []string{"room1"}},
	}}
	e := newAdminEcho(t, store)
	token := login(t, e)

	rec := doAuthJSON(e, http.MethodPut, "/api/admin/reservations/r1/status", token, `{"status":"approved"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusApproved, store.records[0].Status)
}

func TestDecideDeniedWithSuggestion(t *testing.T) {
	store := &stubStore{records: []model.Reservation{
		{ID: "r1", Name: "A", Email: "a@x.com", Status: model.StatusPending, Spaces: []string{"room1"}},
	}}
	e := newAdminEcho(t, store)
	token := login(t, e)

	rec := doAuthJSON(e, http.MethodPut, "/api/admin/reservations/r1/status", token,
		`{"status":"denied","suggestion":"mardi 14h-16h"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusDenied, store.records[0].Status)
	assert.Equal(t, "mardi 14h-16h", store.records[0].Suggestion)
}

func TestDecideInvalidStatusIs400(t *testing.T) {
	store := &stubStore{records: []model.Reservation{
		{ID: "r1", Name: "A", Email: "a@x.com", Status: model.StatusPending, Spaces: []string{"room1"}},
	}}
	e := newAdminEcho(t, store)
	token := login(t, e)

	for _, status := range []string{"pending", "cancelled", "APPROVED"} {
		rec := doAuthJSON(e, http.MethodPut, "/api/admin/reservations/r1/status", token,
			fmt.Sprintf(`{"status":%q}`, status))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q must be rejected", status)
	}
	assert.Equal(t, model.StatusPending, store.records[0].Status)
}

func TestDecideUnknownIDIs404(t *testing.T) {
	e := newAdminEcho(t, &stubStore{})
	token := login(t, e)

	rec := doAuthJSON(e, http.MethodPut, "/api/admin/reservations/missing/status", token, `{"status":"approved"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
