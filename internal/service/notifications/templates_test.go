package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func tryoutAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        uuid.New(),
		TypeCode:  domain.TypeTryout,
		Date:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: ptr.Ptr(types.TimeString("10:00")),
		EndTime:   ptr.Ptr(types.TimeString("10:15")),
		Status:    domain.StatusConfirmed,
		Product:   "Teclado 75%",
		Customer: domain.Customer{
			Name:     "Ana",
			Email:    "ana@example.com",
			Phone:    "3001234567",
			IDNumber: "1020304050",
		},
	}
}

func shippingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:       uuid.New(),
		TypeCode: domain.TypeShipping,
		Date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Status:   domain.StatusShipped,
		Product:  "Mouse",
		Customer: domain.Customer{Name: "Luis", Email: "luis@example.com", Phone: "3010000000"},
		Shipping: domain.ShippingInfo{
			Address:      "Calle 1 # 2-3",
			Neighborhood: "Chapinero",
			City:         "Bogotá",
			Carrier:      domain.CarrierInterrapidisimo,
		},
	}
}

func TestComposer_Confirmation_InPerson(t *testing.T) {
	c := NewComposer("TechVenturesCO", []string{"admin@example.com", " "})

	msg, err := c.Confirmation(tryoutAppointment())
	require.NoError(t, err)

	assert.Equal(t, KindConfirmation, msg.Kind)
	assert.Equal(t, []string{"ana@example.com"}, msg.To)
	assert.Equal(t, []string{"admin@example.com"}, msg.Bcc)
	assert.Equal(t, "¡Tu cita fue confirmada!", msg.Subject)
	assert.Contains(t, msg.Text, "Hola Ana")
	assert.Contains(t, msg.Text, "Ensayo presencial (15 min)")
	assert.Contains(t, msg.Text, "Horario: 10:00 - 10:15")
	assert.Contains(t, msg.Text, "Fecha: 2025-06-11")
	assert.NotContains(t, msg.Text, "Transportadora")
}

func TestComposer_Confirmation_Shipping(t *testing.T) {
	c := NewComposer("TechVenturesCO", nil)

	msg, err := c.Confirmation(shippingAppointment())
	require.NoError(t, err)

	assert.Equal(t, "¡Recibimos tus datos de envío!", msg.Subject)
	assert.Empty(t, msg.Bcc)
	assert.Contains(t, msg.Text, "Barrio: Chapinero")
	assert.Contains(t, msg.Text, "Transportadora: INTERRAPIDISIMO")
	assert.Contains(t, msg.Text, "No contraentrega")
}

func TestComposer_AdminNew(t *testing.T) {
	t.Run("no recipients", func(t *testing.T) {
		_, ok, err := NewComposer("X", nil).AdminNew(tryoutAppointment())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admins", func(t *testing.T) {
		msg, ok, err := NewComposer("X", []string{"a@example.com", "b@example.com"}).AdminNew(tryoutAppointment())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.To)
		assert.Equal(t, "Nueva cita programada: 2025-06-11", msg.Subject)
		assert.Contains(t, msg.Text, "Cédula: 1020304050")
		assert.Contains(t, msg.Text, "Notas: -")
	})
}

func TestComposer_Reminder(t *testing.T) {
	c := NewComposer("TechVenturesCO", []string{"admin@example.com"})

	msg, err := c.Reminder(tryoutAppointment(), domain.DefaultReminderBuckets[0])
	require.NoError(t, err)

	assert.Equal(t, KindReminder, msg.Kind)
	assert.Equal(t, []string{"ana@example.com"}, msg.To)
	assert.Empty(t, msg.Bcc)
	assert.Equal(t, "Recordatorio: tu cita hoy a las 10:00 | TechVenturesCO", msg.Subject)
	assert.Contains(t, msg.Text, "empieza en 60 minutos")
}

func TestComposer_Shipped(t *testing.T) {
	c := NewComposer("TechVenturesCO", []string{"admin@example.com"})

	t.Run("tracking carrier", func(t *testing.T) {
		a := shippingAppointment()
		a.Shipping.TrackingNumber = ptr.Ptr("INT-998877")
		a.Shipping.Cost = ptr.Ptr(180000.0)

		msg, err := c.Shipped(a)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin@example.com"}, msg.Bcc)
		assert.Contains(t, msg.Text, "Guía: INT-998877")
		assert.Contains(t, msg.Text, "Valor: $ 180.000 COP")
		assert.NotContains(t, msg.Text, "Link del viaje")
	})

	t.Run("picap trip link", func(t *testing.T) {
		a := shippingAppointment()
		a.Shipping.Carrier = domain.CarrierPicap
		a.Shipping.TripLink = ptr.Ptr("https://picap.example/trip/1")
		a.Shipping.TrackingNumber = ptr.Ptr("ignored")

		msg, err := c.Shipped(a)
		require.NoError(t, err)
		assert.Contains(t, msg.Text, "Link del viaje: https://picap.example/trip/1")
		assert.NotContains(t, msg.Text, "Guía:")
		assert.NotContains(t, msg.Text, "Valor:")
	})
}
