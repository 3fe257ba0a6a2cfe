package delete_appointments

import (
	deleteAppointments "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_appointments"
)

// KindInvalidIDs пустой или некорректный список ID
const KindInvalidIDs = "INVALID_IDS"

// DeleteAppointmentsRequest HTTP request model
type DeleteAppointmentsRequest struct {
	IDs []string `json:"ids"`
}

// DeleteAppointmentsResponse HTTP response model
type DeleteAppointmentsResponse struct {
	OK      bool  `json:"ok"`
	Deleted int64 `json:"deleted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DeleteAppointmentsRequest) ToUseCaseRequest() *deleteAppointments.Request {
	return &deleteAppointments.Request{IDs: r.IDs}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *deleteAppointments.Response) DeleteAppointmentsResponse {
	return DeleteAppointmentsResponse{OK: true, Deleted: resp.Deleted}
}
