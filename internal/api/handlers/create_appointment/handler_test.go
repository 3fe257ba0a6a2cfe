package create_appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createAppointment.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"type_code": "tryout",
	"date": "2025-06-11",
	"start_time": "10:00",
	"customer_name": "Ana",
	"customer_email": "Ana@Example.com",
	"customer_phone": "300 123 4567"
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createAppointment.Request) bool {
		return req.TypeCode == domain.TypeTryout &&
			req.Date.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) &&
			req.StartTime != nil && *req.StartTime == types.TimeString("10:00") &&
			req.EndTime == nil
	})).Return(&createAppointment.Response{ID: "6f1c2d1e-0000-4000-8000-000000000001", TypeCode: domain.TypeTryout}, nil)

	rec := post(NewHandler(uc, logger.Nop()), validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":true,"id":"6f1c2d1e-0000-4000-8000-000000000001"}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandler_ParseErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind string
	}{
		{"bad json", `{"type_code":`, "INVALID_BODY"},
		{"bad date", `{"type_code":"TRYOUT","date":"11/06/2025"}`, "INVALID_DATE"},
		{"bad start", `{"type_code":"TRYOUT","date":"2025-06-11","start_time":"10h"}`, "MISSING_SLOT"},
		{"bad end", `{"type_code":"TRYOUT","date":"2025-06-11","start_time":"10:00","end_time":"25:00"}`, "MISSING_SLOT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := post(NewHandler(uc, logger.Nop()), tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"ok":false,"error":%q}`, tc.kind), rec.Body.String())
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"missing fields", createAppointment.ErrMissingFields, http.StatusBadRequest, `{"ok":false,"error":"MISSING_FIELDS"}`},
		{"invalid email", createAppointment.ErrInvalidEmail, http.StatusBadRequest, `{"ok":false,"error":"INVALID_EMAIL"}`},
		{"outside window", createAppointment.ErrOutsideWindow, http.StatusBadRequest, `{"ok":false,"error":"OUTSIDE_WINDOW"}`},
		{"slot size", &createAppointment.SlotSizeError{Expected: 15, Got: 30}, http.StatusBadRequest,
			`{"ok":false,"error":"INVALID_SLOT_SIZE","meta":{"expected":15,"got":30}}`},
		{"slot taken", createAppointment.ErrSlotTaken, http.StatusConflict, `{"ok":false,"error":"SLOT_TAKEN"}`},
		{"day limit", &createAppointment.LimitError{Scope: createAppointment.ScopeDay}, http.StatusTooManyRequests,
			`{"ok":false,"error":"USER_LIMIT_REACHED","meta":{"scope":"DAY"}}`},
		{"week limit", &createAppointment.LimitError{Scope: createAppointment.ScopeWeek, Limit: 3}, http.StatusTooManyRequests,
			`{"ok":false,"error":"USER_LIMIT_REACHED","meta":{"scope":"WEEK","limit":3}}`},
		{"internal", fmt.Errorf("%w: tx", createAppointment.ErrInternal), http.StatusInternalServerError,
			`{"ok":false,"error":"SERVER_ERROR"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := post(NewHandler(uc, logger.Nop()), validBody)

			require.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
