package get_availability

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// SlotResponse свободный слот
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Type  string         `json:"type"`
	Slots []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(dateStr, typeStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailability.Request{
		Date: date,
		Type: domain.AppointmentType(strings.ToUpper(typeStr)),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(typeCode domain.AppointmentType, resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{Start: s.Start.String(), End: s.End.String()})
	}
	return &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Type:  string(typeCode),
		Slots: slots,
	}
}
