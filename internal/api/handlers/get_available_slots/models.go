package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	ServiceID    int64           `json:"serviceId"`
	DurationMins int             `json:"durationMins"`
	SlotStepMins int             `json:"slotStepMins"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot RFC 3339 bounds in the business timezone
type AvailableSlot struct {
	StartISO string `json:"startISO"`
	EndISO   string `json:"endISO"`
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartISO: slot.Start.Format(time.RFC3339),
			EndISO:   slot.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		ServiceID:    resp.ServiceID,
		DurationMins: resp.DurationMins,
		SlotStepMins: resp.SlotStepMins,
		Slots:        slots,
	}
}

// ToUseCaseRequest parses the query parameters
func ToUseCaseRequest(serviceIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
