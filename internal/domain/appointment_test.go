package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		typeCode AppointmentType
		status   AppointmentStatus
		next     AppointmentStatus
		want     bool
	}{
		{"confirmed to done", TypeTryout, StatusConfirmed, StatusDone, true},
		{"confirmed to cancelled", TypePickup, StatusConfirmed, StatusCancelled, true},
		{"confirmed to no show", TypeTryout, StatusConfirmed, StatusNoShow, true},
		{"shipping to shipped", TypeShipping, StatusConfirmed, StatusShipped, true},
		{"tryout cannot be shipped", TypeTryout, StatusConfirmed, StatusShipped, false},
		{"confirmed to confirmed", TypeTryout, StatusConfirmed, StatusConfirmed, false},
		{"cancelled is final", TypeTryout, StatusCancelled, StatusDone, false},
		{"done is final", TypeShipping, StatusDone, StatusCancelled, false},
		{"unknown status", TypeTryout, StatusConfirmed, AppointmentStatus("LOST"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{TypeCode: tt.typeCode, Status: tt.status}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.next))
		})
	}
}

func TestAppointment_SlotAndStart(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	a := &Appointment{
		TypeCode:  TypeTryout,
		Date:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: ptr.Ptr(types.MustTimeString("10:30")),
		EndTime:   ptr.Ptr(types.MustTimeString("10:45")),
	}

	s, ok := a.Slot()
	assert.True(t, ok)
	assert.Equal(t, 15, s.Minutes())

	at, ok := a.StartsAt(loc)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 11, 10, 30, 0, 0, loc), at)

	shipping := &Appointment{TypeCode: TypeShipping}
	_, ok = shipping.Slot()
	assert.False(t, ok)
	_, ok = shipping.StartsAt(loc)
	assert.False(t, ok)
}

func TestDefaultDeliveryMethod(t *testing.T) {
	assert.Equal(t, DeliveryShipping, DefaultDeliveryMethod(TypeShipping))
	assert.Equal(t, DeliveryInPerson, DefaultDeliveryMethod(TypePickup))
}

func TestAvailabilityWindow_Contains(t *testing.T) {
	w := window("09:00", "10:00", 30)

	assert.True(t, w.Contains(types.MustTimeString("09:00")))
	assert.True(t, w.Contains(types.MustTimeString("09:59")))
	assert.False(t, w.Contains(types.MustTimeString("10:00")))
	assert.False(t, w.Contains(types.MustTimeString("08:59")))
}
