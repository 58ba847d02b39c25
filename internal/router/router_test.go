package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/animal-shelter/internal/config"
	"github.com/iliyamo/animal-shelter/internal/handler"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
	"github.com/iliyamo/animal-shelter/internal/repository/memory"
	"github.com/iliyamo/animal-shelter/internal/service"
	"github.com/iliyamo/animal-shelter/internal/utils"
)

const jwtSecret = "router-test-secret"

type api struct {
	t    *testing.T
	e    *echo.Echo
	repo repository.Set
}

func newAPI(t *testing.T) *api {
	t.Helper()
	set := memory.New().Set()
	svc := service.New(set, service.Settings{
		JWTSecret:  jwtSecret,
		AccessTTL:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	e := New(Options{
		Services:  svc,
		JWTSecret: jwtSecret,
		Cache:     config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}},
		RateLimit: config.RateLimitConfig{Enabled: true, Capacity: 1},
	})
	return &api{t: t, e: e, repo: set}
}

func (a *api) do(method, path, token, contentType, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) json(method, path, token, body string) *httptest.ResponseRecorder {
	return a.do(method, path, token, echo.MIMEApplicationJSON, body)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type authBody struct {
	User struct {
		ID     uint64 `json:"id"`
		Role   string `json:"role"`
		Status string `json:"status"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
}

// seedAdmin stores an administrator directly; there is no public way to
// create the first one.
func (a *api) seedAdmin() {
	a.t.Helper()
	hash, err := utils.HashPassword("admin-password", bcrypt.MinCost)
	require.NoError(a.t, err)
	u := model.NewUser(model.RoleAdministrator, "Admin", "admin@shelter.org", "+100")
	u.PasswordHash = hash
	require.NoError(a.t, a.repo.Users.Create(context.Background(), &u))
}

func (a *api) login(email, password string) authBody {
	a.t.Helper()
	rec := a.json(http.MethodPost, "/api/authentication/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[authBody](a.t, rec)
}

func (a *api) createStaff(adminToken, role, email, phone string) uint64 {
	a.t.Helper()
	body := fmt.Sprintf(`{"full_name":"Staff","email":%q,"phone":%q,"password":"staff-password","role":%q}`, email, phone, role)
	rec := a.json(http.MethodPost, "/api/users", adminToken, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[struct {
		ID uint64 `json:"id"`
	}](a.t, rec).ID
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodGet, "/healthz", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}

func TestHealth_ReportsFailingCheck(t *testing.T) {
	e := New(Options{
		Services:  service.New(memory.New().Set(), service.Settings{JWTSecret: jwtSecret}),
		JWTSecret: jwtSecret,
		Checks: map[string]handler.Check{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]any{"database": "ok", "redis": "connection refused"}, body["checks"])
}

func TestAuthRequired(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/animals", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing bearer token", decode[map[string]any](t, rec)["error"])

	rec = a.do(http.MethodGet, "/api/animals", "garbage", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.json(http.MethodPost, "/api/authentication/login", "", `{"email":"nobody@shelter.org","password":"whatever1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShelterWorkflow(t *testing.T) {
	a := newAPI(t)
	a.seedAdmin()
	admin := a.login("admin@shelter.org", "admin-password").Access.Token

	a.createStaff(admin, "CARETAKER", "care@shelter.org", "+200")
	vetID := a.createStaff(admin, "VETERINARIAN", "vet@shelter.org", "+300")
	caretaker := a.login("care@shelter.org", "staff-password").Access.Token
	vet := a.login("vet@shelter.org", "staff-password").Access.Token

	// self sign-up always yields a pending volunteer
	rec := a.json(http.MethodPost, "/api/authentication/register", "",
		`{"full_name":"Val","email":"val@mail.org","phone":"+400","password":"volunteer-pw","role":"ADMINISTRATOR"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reg := decode[authBody](t, rec)
	assert.Equal(t, "VOLUNTEER", reg.User.Role)
	assert.Equal(t, "PENDING", reg.User.Status)
	volunteer := reg.Access.Token

	rec = a.json(http.MethodPost, "/api/authentication/register", "",
		`{"full_name":"Other","email":"other@mail.org","phone":"+400","password":"volunteer-pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "a record with the same phone already exists", decode[map[string]any](t, rec)["error"])

	rec = a.do(http.MethodGet, "/api/authentication/me", volunteer, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reg.User.ID, decode[authBody](t, rec).User.ID)

	// animals
	animal := `{"name":"Rex","breed":"Labrador","age":3,"sex":"MALE","size":"LARGE","species":"dog","weight":30,"date_found":"2024-01-10T00:00:00Z"}`
	rec = a.json(http.MethodPost, "/api/animals", volunteer, animal)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.json(http.MethodPost, "/api/animals", caretaker, animal)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	animalID := decode[struct {
		ID uint64 `json:"id"`
	}](t, rec).ID

	rec = a.json(http.MethodPost, "/api/animals", caretaker, `{"species":"cat"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[map[string]any](t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "date_found")

	rec = a.do(http.MethodGet, "/api/animals?search=RE&max_age=5&breed=Labrador", volunteer, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, page.Total)

	rec = a.do(http.MethodGet, "/api/animals?page=9223372036854775807&page_size=100", volunteer, "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decode[map[string]any](t, rec)["items"])
	rec = a.do(http.MethodGet, "/api/users?page=9223372036854775807&page_size=100", admin, "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(4), decode[map[string]any](t, rec)["total"])

	rec = a.do(http.MethodGet, "/api/animals?min_age=4", volunteer, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode[map[string]any](t, rec)["total"])

	path := fmt.Sprintf("/api/animals/%d", animalID)
	rec = a.do(http.MethodPatch, path, caretaker, "application/merge-patch+json", `{"age":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(5), decode[map[string]any](t, rec)["age"])

	rec = a.do(http.MethodPatch, path, caretaker, "application/json-patch+json", `[{"op":"replace","path":"/name","value":"Rexy"}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Rexy", decode[map[string]any](t, rec)["name"])

	rec = a.do(http.MethodPatch, "/api/animals/999", caretaker, "application/merge-patch+json", `{"age":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// reservations: a volunteer books for themselves
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	body := fmt.Sprintf(`{"animal_id":%d,"volunteer_id":999,"start_date":%q,"end_date":%q}`,
		animalID, start.Format(time.RFC3339), start.Add(2*time.Hour).Format(time.RFC3339))
	rec = a.json(http.MethodPost, "/api/reservations", volunteer, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[map[string]any](t, rec)
	assert.Equal(t, float64(reg.User.ID), res["volunteer_id"])
	assert.Equal(t, "UPCOMING", res["status"])

	bad := fmt.Sprintf(`{"animal_id":%d,"start_date":%q,"end_date":%q}`,
		animalID, start.Format(time.RFC3339), start.Add(-time.Hour).Format(time.RFC3339))
	rec = a.json(http.MethodPost, "/api/reservations", volunteer, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, path+"/reservations", caretaker, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = a.do(http.MethodGet, "/api/users", volunteer, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// medical records
	rec = a.json(http.MethodPost, "/api/medications", caretaker,
		fmt.Sprintf(`{"drug":"Amoxicillin","count":2,"unit":"tablet","start_date":%q,"end_date":%q,"animal_id":%d}`,
			start.Format(time.RFC3339), start.Add(72*time.Hour).Format(time.RFC3339), animalID))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.json(http.MethodPost, "/api/medications", vet,
		fmt.Sprintf(`{"drug":"Amoxicillin","count":2,"unit":"tablet","start_date":%q,"end_date":%q,"animal_id":%d}`,
			start.Format(time.RFC3339), start.Add(72*time.Hour).Format(time.RFC3339), animalID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(vetID), decode[map[string]any](t, rec)["veterinarian_id"])

	rec = a.do(http.MethodGet, "/api/medications?veterinarian_id="+fmt.Sprint(vetID), caretaker, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	// the veterinarian is still referenced by the schedule
	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", vetID), admin, "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// deleting the animal takes its reservations and schedules along
	rec = a.do(http.MethodDelete, path, caretaker, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = a.do(http.MethodDelete, path, admin, "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, path, admin, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(http.MethodGet, "/api/reservations", volunteer, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", vetID), admin, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestVolunteersAreManagedByCaretakers(t *testing.T) {
	a := newAPI(t)
	a.seedAdmin()
	admin := a.login("admin@shelter.org", "admin-password").Access.Token
	a.createStaff(admin, "CARETAKER", "care@shelter.org", "+200")
	caretaker := a.login("care@shelter.org", "staff-password").Access.Token

	rec := a.json(http.MethodPost, "/api/authentication/register", "",
		`{"full_name":"Val","email":"val@mail.org","phone":"+400","password":"volunteer-pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	volID := decode[authBody](t, rec).User.ID

	rec = a.do(http.MethodGet, "/api/volunteers", admin, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	path := fmt.Sprintf("/api/volunteers/%d", volID)
	rec = a.do(http.MethodPatch, path, caretaker, "application/merge-patch+json", `{"status":"ACTIVE","is_verified":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decode[map[string]any](t, rec)
	assert.Equal(t, "ACTIVE", v["status"])
	assert.Equal(t, true, v["is_verified"])

	rec = a.do(http.MethodPatch, path, caretaker, "application/merge-patch+json", `{"status":"RETIRED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/volunteers?page_size=10", caretaker, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["total"])
}
