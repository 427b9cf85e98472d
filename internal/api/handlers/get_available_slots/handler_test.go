package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots"+query, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	loc := time.FixedZone("BST", 3600)
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, loc)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date: time.Date(2025, 3, 3, 0, 0, 0, 0, loc), ServiceID: 1, DurationMins: 30, SlotStepMins: 15,
		Slots: []getAvailableSlots.Slot{{Start: start, End: start.Add(30 * time.Minute)}},
	}}

	rec := get(NewHandler(uc, nopLogger{}), "?serviceId=1&date=2025-03-03")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.EqualValues(t, 1, uc.got.ServiceID)
	assert.JSONEq(t, `{
		"date": "2025-03-03", "serviceId": 1, "durationMins": 30, "slotStepMins": 15,
		"slots": [{"startISO": "2025-03-03T09:00:00+01:00", "endISO": "2025-03-03T09:30:00+01:00"}]
	}`, rec.Body.String())
}

func TestHandle_EmptyDayIsEmptyArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Date: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), ServiceID: 1}}
	rec := get(NewHandler(uc, nopLogger{}), "?serviceId=1&date=2025-03-08")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})
	assert.Equal(t, http.StatusBadRequest, get(h, "").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "?serviceId=1").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "?serviceId=x&date=2025-03-03").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "?serviceId=1&date=03/03/2025").Code)

	rec := get(NewHandler(&fakeUseCase{err: getAvailableSlots.ErrServiceNotFound}, nopLogger{}), "?serviceId=9&date=2025-03-03")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(NewHandler(&fakeUseCase{err: getAvailableSlots.ErrInternal}, nopLogger{}), "?serviceId=9&date=2025-03-03")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
