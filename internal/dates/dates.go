// Package dates resolves the relative day expressions people type and formats
// dates for Spanish text.
package dates

import (
	"strings"
	"time"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
)

// offsets are keyed by the folded expression (accents removed, lower case).
var offsets = map[string]int{
	"hoy":                0,
	"today":              0,
	"manana":             1,
	"tomorrow":           1,
	"pasado manana":      2,
	"day after tomorrow": 2,
}

// ResolveRelative turns "hoy", "mañana", "pasado mañana" and their English
// equivalents into YYYY-MM-DD relative to now. Anything else is returned
// unchanged.
func ResolveRelative(s string, now time.Time) string {
	key := strings.Join(strings.Fields(domain.NormalizeName(s)), " ")
	days, ok := offsets[key]
	if !ok {
		return s
	}
	return now.AddDate(0, 0, days).Format(domain.DateLayout)
}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatLong renders 2025-03-10 as "10 de marzo de 2025". Unparsable input is
// returned as is.
func FormatLong(date string) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("2") + " de " + months[d.Month()-1] + " de " + d.Format("2006")
}

type TimeContext struct {
	Date      string `json:"fecha_actual"`
	Time      string `json:"hora_actual"`
	Weekday   string `json:"dia_semana"`
	WeekdayES string `json:"dia_semana_es"`
	Timestamp string `json:"timestamp"`
}

func ContextAt(now time.Time) TimeContext {
	es := domain.WeekdayName(now.Weekday())
	return TimeContext{
		Date:      now.Format(domain.DateLayout),
		Time:      now.Format("15:04"),
		Weekday:   now.Weekday().String(),
		WeekdayES: strings.ToUpper(es[:1]) + es[1:],
		Timestamp: now.Format(time.RFC3339),
	}
}
