package appointment

import "time"

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailableSlots lists the start times on date that would pass
// ValidateAppointment at now, stepping through the opening window.
func (s Schedule) AvailableSlots(date string, now time.Time, step time.Duration) []TimeSlot {
	w, ok := s.BusinessHours(date)
	if !ok || step <= 0 {
		return []TimeSlot{}
	}

	open, _ := ParseClock(w.Open)
	closeAt, _ := ParseClock(w.Close)
	stepMin := int(step / time.Minute)
	if stepMin == 0 {
		stepMin = 1
	}

	slots := []TimeSlot{}
	for t := open; t <= closeAt; t += stepMin {
		hm := FormatClock(t)
		if !s.ValidateAppointment(date, hm, now).OK {
			continue
		}
		end := t + stepMin
		if end > closeAt {
			end = closeAt
		}
		slots = append(slots, TimeSlot{Start: hm, End: FormatClock(end)})
	}
	return slots
}
