package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers"
	"github.com/m04kA/SMC-AppointmentService/pkg/password"
	"github.com/m04kA/SMC-AppointmentService/pkg/token"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	hash, err := password.Hash("admin123")
	require.NoError(t, err)
	_, err = store.Admins().Create(context.Background(), &domain.Admin{Name: "Admin", Email: "admin@booking.com", PasswordHash: hash})
	require.NoError(t, err)

	registrar := customers.NewService(store.Customers(), password.Bcrypt{}, nopLogger{})
	svc := auth.NewService(store.Admins(), store.Customers(), registrar,
		token.NewIssuer("secret", time.Hour), password.Bcrypt{}, nopLogger{})
	return NewHandler(svc, nopLogger{})
}

func post(fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestAdminLogin(t *testing.T) {
	h := newHandler(t)

	rec := post(h.AdminLogin, `{"email":"admin@booking.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
		Admin struct {
			Email string `json:"email"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@booking.com", resp.Admin.Email)

	rec = post(h.AdminLogin, `{"email":"admin@booking.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, post(h.AdminLogin, `{"email":"admin@booking.com"}`).Code)
}

func TestCustomerRegister(t *testing.T) {
	h := newHandler(t)

	rec := post(h.CustomerRegister, `{"name":"Demo","email":"demo@customer.com","password":"customer123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(h.CustomerRegister, `{"name":"Demo","email":"demo@customer.com","password":"customer123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Email already registered"}`, rec.Body.String())

	rec = post(h.CustomerRegister, `{"name":"Demo","email":"x@customer.com","password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be at least 6 characters"}`, rec.Body.String())

	rec = post(h.CustomerRegister, `{"email":"y@customer.com","password":"customer123"}`)
	assert.JSONEq(t, `{"message":"Name, email and password are required"}`, rec.Body.String())

	rec = post(h.CustomerLogin, `{"email":"demo@customer.com","password":"customer123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMe(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), domain.Identity{SubjectID: 1, Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), domain.Identity{SubjectID: 77, Role: domain.RoleCustomer}))
	rec = httptest.NewRecorder()
	h.Me(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
