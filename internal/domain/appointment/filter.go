package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// Filter combines criteria by conjunction. Empty fields match anything.
// Without an explicit Status, Cancelled records are excluded unless
// AllStatuses is set.
type Filter struct {
	PatientID  string
	Name       string
	Date       string
	Time       string
	Medication string
	Status     Status

	AllStatuses bool
}

func (f Filter) Match(ap *models.Appointment) bool {
	if f.Status != "" {
		if Status(ap.Status) != f.Status {
			return false
		}
	} else if !f.AllStatuses && Status(ap.Status) == StatusCancelled {
		return false
	}

	if f.PatientID != "" && ap.PatientID != f.PatientID {
		return false
	}
	if f.Name != "" && !strings.Contains(NormalizeName(ap.PatientName), NormalizeName(f.Name)) {
		return false
	}
	if f.Date != "" && ap.Date != f.Date {
		return false
	}
	if f.Time != "" && !sameClock(ap.Time, f.Time) {
		return false
	}
	if f.Medication != "" &&
		!strings.Contains(strings.ToLower(ap.Medication), strings.ToLower(strings.TrimSpace(f.Medication))) {
		return false
	}
	return true
}

// sameClock compares times exactly, treating "9:00" and "09:00" as equal.
func sameClock(stored, want string) bool {
	a, okA := ParseClock(strings.TrimSpace(stored))
	b, okB := ParseClock(strings.TrimSpace(want))
	if okA && okB {
		return a == b
	}
	return stored == want
}

func (f Filter) Apply(records []models.Appointment) []models.Appointment {
	out := []models.Appointment{}
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// DateRange matches records whose date falls within [From, To]. Records with
// an unparsable date never match.
type DateRange struct {
	From time.Time
	To   time.Time
}

func ParseDateRange(from, to string) (DateRange, error) {
	f, err := time.Parse(DateLayout, strings.TrimSpace(from))
	if err != nil {
		return DateRange{}, invalidDate("from")
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(to))
	if err != nil {
		return DateRange{}, invalidDate("to")
	}
	return DateRange{From: f, To: t}, nil
}

func (r DateRange) Match(ap *models.Appointment) bool {
	d, err := time.Parse(DateLayout, strings.TrimSpace(ap.Date))
	if err != nil {
		return false
	}
	return !d.Before(r.From) && !d.After(r.To)
}
