package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// QueryAppointments is the read side. Every call re-reads the store.
type QueryAppointments struct {
	store domain.Store
}

func NewQueryAppointments(store domain.Store) *QueryAppointments {
	return &QueryAppointments{store: store}
}

func (uc *QueryAppointments) Find(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	records, err := uc.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(records), nil
}

func (uc *QueryAppointments) ByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return uc.Find(ctx, domain.Filter{Date: strings.TrimSpace(date)})
}

func (uc *QueryAppointments) ByDateTime(ctx context.Context, date, hm string) ([]models.Appointment, error) {
	return uc.Find(ctx, domain.Filter{Date: strings.TrimSpace(date), Time: strings.TrimSpace(hm)})
}

// ByPatient searches by id when given, by name otherwise.
func (uc *QueryAppointments) ByPatient(
	ctx context.Context,
	patientID string,
	name string,
) ([]models.Appointment, error) {

	patientID = strings.TrimSpace(patientID)
	name = strings.TrimSpace(name)

	switch {
	case patientID != "":
		return uc.Find(ctx, domain.Filter{PatientID: patientID})
	case name != "":
		return uc.Find(ctx, domain.Filter{Name: name})
	default:
		return nil, httperr.Invalid("patient", "se requiere el ID del paciente (cédula) o el nombre")
	}
}

func (uc *QueryAppointments) ByDateRange(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	r, err := domain.ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	records, err := uc.Find(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for i := range records {
		if r.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// SearchByNameAllStatuses matches names regardless of status, so cancelled and
// past services show up as deletion candidates.
func (uc *QueryAppointments) SearchByNameAllStatuses(
	ctx context.Context,
	name string,
) ([]models.Appointment, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return []models.Appointment{}, nil
	}
	return uc.Find(ctx, domain.Filter{Name: name, AllStatuses: true})
}

// SearchCriteria narrows the services a cancellation refers to. At least one
// field is required.
type SearchCriteria struct {
	PatientID  string `form:"patient_id" json:"patient_id"`
	Name       string `form:"name" json:"name"`
	Date       string `form:"date" json:"date"`
	Time       string `form:"time" json:"time"`
	Medication string `form:"medication" json:"medication"`
}

func (c SearchCriteria) empty() bool {
	return strings.TrimSpace(c.PatientID+c.Name+c.Date+c.Time+c.Medication) == ""
}

func (uc *QueryAppointments) SearchForCancellation(
	ctx context.Context,
	c SearchCriteria,
) ([]models.Appointment, error) {

	if c.empty() {
		return nil, httperr.Invalid("criteria", "indica al menos un criterio de búsqueda")
	}

	return uc.Find(ctx, domain.Filter{
		PatientID:  strings.TrimSpace(c.PatientID),
		Name:       strings.TrimSpace(c.Name),
		Date:       strings.TrimSpace(c.Date),
		Time:       strings.TrimSpace(c.Time),
		Medication: strings.TrimSpace(c.Medication),
	})
}
