package customers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func newRouter() *mux.Router {
	store := memory.NewStore()
	h := NewHandler(customers.NewService(store.Customers(), plainHasher{}, nopLogger{}), nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/customers", h.List).Methods(http.MethodGet)
	r.HandleFunc("/customers", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/customers/{customerId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/customers/{customerId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/customers/{customerId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCustomers(t *testing.T) {
	r := newRouter()

	rec := do(r, http.MethodPost, "/customers", `{"name":"Demo","email":"Demo@Customer.com","password":"customer123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"demo@customer.com"`)
	assert.NotContains(t, rec.Body.String(), "hashed")

	rec = do(r, http.MethodPost, "/customers", `{"name":"Again","email":"demo@customer.com","password":"customer123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodPost, "/customers", `{"name":"Short","email":"s@x.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be at least 6 characters"}`, rec.Body.String())

	rec = do(r, http.MethodPut, "/customers/1", `{"phone":"0123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phone":"0123"`)

	rec = do(r, http.MethodGet, "/customers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Demo"`)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/customers/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/customers/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/customers/x", "").Code)
}
