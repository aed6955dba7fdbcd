package appointment

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts "H:MM" or "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, true
}

// FormatClock renders minutes after midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ===============================
// Schedule
// ===============================

// Window is an opening interval, both bounds inclusive.
type Window struct {
	Open  string `yaml:"open" json:"open"`
	Close string `yaml:"close" json:"close"`
}

type Schedule struct {
	Weekday  Window
	Saturday Window

	// Lunch closure is half-open [LunchStart, LunchEnd) and only applies Monday to Friday.
	LunchStart string
	LunchEnd   string

	MinLead time.Duration
}

func DefaultSchedule() Schedule {
	return Schedule{
		Weekday:    Window{Open: "08:00", Close: "17:00"},
		Saturday:   Window{Open: "08:00", Close: "12:00"},
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		MinLead:    2 * time.Hour,
	}
}

// Check reports the first malformed clock value in the schedule.
func (s Schedule) Check() error {
	for name, v := range map[string]string{
		"weekday.open":   s.Weekday.Open,
		"weekday.close":  s.Weekday.Close,
		"saturday.open":  s.Saturday.Open,
		"saturday.close": s.Saturday.Close,
		"lunch.start":    s.LunchStart,
		"lunch.end":      s.LunchEnd,
	} {
		if _, ok := ParseClock(v); !ok {
			return fmt.Errorf("schedule %s: invalid time %q", name, v)
		}
	}
	if s.MinLead < 0 {
		return fmt.Errorf("schedule: negative lead time %s", s.MinLead)
	}
	return nil
}

// BusinessHours returns the opening window for the weekday of date.
// ok is false on Sundays and for unparsable dates.
func (s Schedule) BusinessHours(date string) (Window, bool) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return Window{}, false
	}
	return s.windowFor(d.Weekday())
}

func (s Schedule) windowFor(wd time.Weekday) (Window, bool) {
	switch wd {
	case time.Sunday:
		return Window{}, false
	case time.Saturday:
		return s.Saturday, true
	default:
		return s.Weekday, true
	}
}

// IsLunchClosed reports whether hm falls in the lunch closure of date.
// Saturdays and Sundays have no lunch closure.
func (s Schedule) IsLunchClosed(date, hm string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return s.lunchClosed(d.Weekday(), hm)
}

func (s Schedule) lunchClosed(wd time.Weekday, hm string) bool {
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	t, ok := ParseClock(hm)
	if !ok {
		return false
	}
	start, _ := ParseClock(s.LunchStart)
	end, _ := ParseClock(s.LunchEnd)
	return t >= start && t < end
}

func (s Schedule) IsWithinBusinessHours(date, hm string) bool {
	w, ok := s.BusinessHours(date)
	if !ok {
		return false
	}
	return within(w, hm)
}

func within(w Window, hm string) bool {
	t, ok := ParseClock(hm)
	if !ok {
		return false
	}
	open, _ := ParseClock(w.Open)
	closeAt, _ := ParseClock(w.Close)
	return t >= open && t <= closeAt
}

// ===============================
// Eligibility
// ===============================

type Reason string

const (
	ReasonMalformed            Reason = "malformed"
	ReasonPastDate             Reason = "past_date"
	ReasonInsufficientLeadTime Reason = "insufficient_lead_time"
	ReasonClosedWeekday        Reason = "closed_weekday"
	ReasonLunchClosed          Reason = "lunch_closed"
	ReasonOutsideHours         Reason = "outside_hours"
)

// Decision is the result of an eligibility check. A rejection is a value, not an error.
type Decision struct {
	OK      bool   `json:"ok"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func reject(r Reason, format string, args ...any) Decision {
	return Decision{Reason: r, Message: fmt.Sprintf(format, args...)}
}

var weekdayNames = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// WeekdayName returns the Spanish weekday name in lower case.
func WeekdayName(wd time.Weekday) string {
	return weekdayNames[wd]
}

// ValidateAppointment runs the booking rules in order and stops at the first failure.
// Dates are interpreted in now's location.
func (s Schedule) ValidateAppointment(date, hm string, now time.Time) Decision {
	loc := now.Location()

	d, err := time.ParseInLocation(DateLayout, date, loc)
	t, ok := ParseClock(hm)
	if err != nil || !ok {
		return reject(ReasonMalformed,
			"Formato de fecha u hora inválido. Use YYYY-MM-DD para fecha y HH:MM para hora.")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if d.Before(today) {
		return reject(ReasonPastDate,
			"No se pueden agendar servicios en fechas pasadas. Fecha actual: %s", now.Format(DateLayout))
	}

	if d.Equal(today) {
		start := d.Add(time.Duration(t) * time.Minute)
		if start.Before(now.Add(s.MinLead)) {
			return reject(ReasonInsufficientLeadTime,
				"Las citas deben agendarse con al menos %s de anticipación. Hora actual: %s",
				leadText(s.MinLead), now.Format("15:04"))
		}
	}

	w, open := s.windowFor(d.Weekday())
	if !open {
		return reject(ReasonClosedWeekday,
			"No se puede agendar en domingos. La farmacia está cerrada los domingos.")
	}

	if s.lunchClosed(d.Weekday(), hm) {
		return reject(ReasonLunchClosed,
			"El horario de %s a %s está cerrado por almuerzo.", s.LunchStart, s.LunchEnd)
	}

	if !within(w, hm) {
		return reject(ReasonOutsideHours,
			"El horario de atención el %s es de %s a %s", WeekdayName(d.Weekday()), w.Open, w.Close)
	}

	return Decision{OK: true}
}

func leadText(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	}
	return fmt.Sprintf("%d minutos", int(d/time.Minute))
}
