package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRemindersClaimed("1h", 3)
		m.IncReminderClaimError("1h")
		m.IncNotificationSent("reminder")
		m.IncNotificationFailed("reminder")
		m.IncNotificationDropped("reminder")
		m.IncBookingCreated("TRYOUT")
		m.IncBookingRejected("TRYOUT", "SLOT_TAKEN")
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.ObserveRemindersClaimed("30m", 2)
	m.ObserveRemindersClaimed("30m", 0)
	m.IncBookingRejected("SHIPPING", "USER_LIMIT_REACHED")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RemindersClaimed.WithLabelValues("30m")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsRejected.WithLabelValues("SHIPPING", "USER_LIMIT_REACHED")))
}
