package domain

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot bookable interval inside a window; equal by (Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// Minutes returns the slot length
func (s Slot) Minutes() int {
	return s.Start.MinutesUntil(s.End)
}

// GenerateSlots splits a window into consecutive slots of SlotMinutes.
// A trailing remainder shorter than SlotMinutes is dropped.
// Windows with a granularity outside AllowedSlotMinutes produce no slots.
func GenerateSlots(w AvailabilityWindow) []Slot {
	m := w.SlotMinutes
	start := w.StartTime.Minutes()
	end := w.EndTime.Minutes()
	if !IsValidSlotSize(m) || start >= end {
		return []Slot{}
	}

	slots := make([]Slot, 0, (end-start)/m)
	cursor := start
	for cursor+m < end {
		slots = append(slots, Slot{Start: types.FromMinutes(cursor), End: types.FromMinutes(cursor + m)})
		cursor += m
	}
	if end-cursor == m {
		slots = append(slots, Slot{Start: types.FromMinutes(cursor), End: types.FromMinutes(end)})
	}
	return slots
}

// FreeSlots returns the de-duplicated slots of all windows not occupied by taken,
// sorted by start time
func FreeSlots(windows []AvailabilityWindow, taken []Slot) []Slot {
	occupied := make(map[Slot]struct{}, len(taken))
	for _, s := range taken {
		occupied[s] = struct{}{}
	}

	seen := make(map[Slot]struct{})
	free := make([]Slot, 0)
	for _, w := range windows {
		for _, s := range GenerateSlots(w) {
			if _, ok := occupied[s]; ok {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			free = append(free, s)
		}
	}

	sort.SliceStable(free, func(i, j int) bool {
		if free[i].Start == free[j].Start {
			return free[i].End.IsBefore(free[j].End)
		}
		return free[i].Start.IsBefore(free[j].Start)
	})
	return free
}

// DropPast removes slots that already ended at clock time now
func DropPast(slots []Slot, now types.TimeString) []Slot {
	out := slots[:0:0]
	for _, s := range slots {
		if s.End.IsAfter(now) {
			out = append(out, s)
		}
	}
	return out
}
