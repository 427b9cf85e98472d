package list_appointments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) ListAll(_ context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+query, nil))
	return rec
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &fakeService{}
	rec := get(NewHandler(svc, nopLogger{}), "?from=2025-03-01T00:00:00Z&to=2025-03-08T00:00:00%2B01:00&status=cancelled")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"appointments":[]}`, rec.Body.String())
	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.From)
	require.NotNil(t, svc.got.To)
	assert.True(t, svc.got.To.Equal(time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "cancelled", *svc.got.Status)
}

func TestHandle_NoFilter(t *testing.T) {
	svc := &fakeService{}
	assert.Equal(t, http.StatusOK, get(NewHandler(svc, nopLogger{}), "").Code)
	assert.Nil(t, svc.got.From)
	assert.Nil(t, svc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(NewHandler(&fakeService{}, nopLogger{}), "?from=yesterday").Code)

	svc := &fakeService{err: fmt.Errorf("%w: unknown status", appointments.ErrInvalidInput)}
	rec := get(NewHandler(svc, nopLogger{}), "?status=lost")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Unknown status"}`, rec.Body.String())

	svc = &fakeService{err: appointments.ErrInternal}
	assert.Equal(t, http.StatusInternalServerError, get(NewHandler(svc, nopLogger{}), "").Code)
}
