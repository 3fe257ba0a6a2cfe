package domain

import "time"

// ReminderBucket lead-time bucket of the reminder dispatcher
type ReminderBucket struct {
	Name             string // "1h", "30m"
	LeadMinutes      int
	ToleranceMinutes int
	Marker           string // column set once a reminder is claimed
}

// Reminder marker columns
const (
	MarkerReminded1h  = "reminded_1h_at"
	MarkerReminded30m = "reminded_30m_at"
)

// DefaultReminderBuckets 60 and 30 minutes before start
var DefaultReminderBuckets = []ReminderBucket{
	{Name: "1h", LeadMinutes: 60, ToleranceMinutes: 1, Marker: MarkerReminded1h},
	{Name: "30m", LeadMinutes: 30, ToleranceMinutes: 1, Marker: MarkerReminded30m},
}

// IsKnownMarker guards marker names interpolated into SQL
func IsKnownMarker(m string) bool {
	return m == MarkerReminded1h || m == MarkerReminded30m
}

// Window returns the [from, to] instants whose appointments are due at now
func (b ReminderBucket) Window(now time.Time) (time.Time, time.Time) {
	from := now.Add(time.Duration(b.LeadMinutes-b.ToleranceMinutes) * time.Minute)
	to := now.Add(time.Duration(b.LeadMinutes) * time.Minute)
	return from, to
}
