package appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// NewAppointment is the unvalidated input of a booking.
type NewAppointment struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Medication  string `json:"medication"`
	ServiceType string `json:"service_type"`
	Site        string `json:"site"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status,omitempty"`
}

func checkLength(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return httperr.Invalid(field, lengthMessage(min, max))
	}
	return nil
}

func lengthMessage(min, max int) string {
	return fmt.Sprintf("debe tener entre %d y %d caracteres", min, max)
}

// ValidateShape checks lengths, enums and formats and returns the normalized
// record without an id. Business-hour rules are not applied here.
func ValidateShape(in NewAppointment) (models.Appointment, error) {
	ap := models.Appointment{
		PatientID:   strings.TrimSpace(in.PatientID),
		PatientName: strings.TrimSpace(in.PatientName),
		Medication:  strings.TrimSpace(in.Medication),
		Site:        strings.TrimSpace(in.Site),
		Date:        strings.TrimSpace(in.Date),
	}

	if ap.PatientName == "" {
		return ap, httperr.Invalid("patient_name", "el nombre del paciente es obligatorio")
	}
	if err := checkLength("patient_id", ap.PatientID, 5, 20); err != nil {
		return ap, err
	}
	if err := checkLength("patient_name", ap.PatientName, 2, 100); err != nil {
		return ap, err
	}
	if err := checkLength("medication", ap.Medication, 2, 200); err != nil {
		return ap, err
	}
	if err := checkLength("site", ap.Site, 2, 100); err != nil {
		return ap, err
	}

	st, err := NormalizeServiceType(in.ServiceType)
	if err != nil {
		return ap, err
	}
	ap.ServiceType = string(st)

	if _, err := time.Parse(DateLayout, ap.Date); err != nil {
		return ap, invalidDate("date")
	}

	minutes, ok := ParseClock(strings.TrimSpace(in.Time))
	if !ok {
		return ap, httperr.Invalid("time", "la hora debe tener formato HH:MM (24 horas)")
	}
	ap.Time = FormatClock(minutes)

	status := InitialStatus()
	if strings.TrimSpace(in.Status) != "" {
		if status, err = ParseStatus(in.Status); err != nil {
			return ap, err
		}
	}
	ap.Status = string(status)

	return ap, nil
}

func invalidDate(field string) error {
	return httperr.Invalid(field, "la fecha debe tener formato YYYY-MM-DD")
}
