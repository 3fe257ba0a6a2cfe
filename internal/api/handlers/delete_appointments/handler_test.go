package delete_appointments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	deleteAppointments "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_appointments"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *deleteAppointments.Request) (*deleteAppointments.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*deleteAppointments.Response)
	return resp, args.Error(1)
}

func del(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandler_Deleted(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &deleteAppointments.Request{
		IDs: []string{"6f1c2d1e-0000-4000-8000-000000000001", "6f1c2d1e-0000-4000-8000-000000000002"},
	}).Return(&deleteAppointments.Response{Deleted: 2}, nil)

	rec := del(NewHandler(uc, logger.Nop()),
		`{"ids":["6f1c2d1e-0000-4000-8000-000000000001","6f1c2d1e-0000-4000-8000-000000000002"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"deleted":2}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandler_IDsNotAnArray(t *testing.T) {
	uc := &mockUseCase{}

	for _, body := range []string{`{"ids":"6f1c2d1e-0000-4000-8000-000000000001"}`, `nope`, ``} {
		rec := del(NewHandler(uc, logger.Nop()), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"ok":false,"error":"INVALID_IDS"}`, rec.Body.String(), body)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"empty ids", deleteAppointments.ErrInvalidIDs, http.StatusBadRequest, "INVALID_IDS"},
		{"internal", fmt.Errorf("%w: timeout", deleteAppointments.ErrInternal), http.StatusInternalServerError, "SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := del(NewHandler(uc, logger.Nop()), `{"ids":[]}`)

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"ok":false,"error":%q}`, tc.kind), rec.Body.String())
		})
	}
}
