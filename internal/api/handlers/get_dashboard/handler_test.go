package get_dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/dashboard/models"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.StatsResponse
	err  error
}

func (f fakeService) Stats(context.Context) (*models.StatsResponse, error) { return f.resp, f.err }

func TestHandle(t *testing.T) {
	h := NewHandler(fakeService{resp: &models.StatsResponse{TotalAppointments: 3, TotalCustomers: 2}}, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalAppointments":3`)

	h = NewHandler(fakeService{err: errors.New("boom")}, nopLogger{})
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
