package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

type sampleRow struct {
	patientID  string
	name       string
	medication string
	service    domain.ServiceType
	site       string
	dayOffset  int
	time       string
	status     domain.Status
}

var sampleRows = []sampleRow{
	{"101202564", "Reinaldo González", "Losartan", domain.ServiceHomeDelivery, "Sur", 2, "14:00", domain.StatusPending},
	{"523456789", "María Rodríguez", "Insulina", domain.ServiceHomeDelivery, "Norte", 1, "10:00", domain.StatusPending},
	{"789123456", "Carlos Méndez", "Metformina", domain.ServiceInPersonVisit, "Centro", 3, "15:30", domain.StatusPending},
	{"456789123", "Ana López", "Atorvastatina", domain.ServiceHomeDelivery, "Sur", -2, "11:00", domain.StatusDelivered},
	{"321654987", "Pedro Sánchez", "Omeprazol", domain.ServiceHomeDelivery, "Norte", -5, "09:00", domain.StatusDelivered},
	{"654321987", "Laura Torres", "Adalimumab", domain.ServiceInPersonVisit, "Centro", 4, "16:00", domain.StatusPending},
	{"987654321", "Roberto Jiménez", "Amlodipino", domain.ServiceHomeDelivery, "Sur", 5, "13:00", domain.StatusPending},
	{"147258369", "Carmen Vásquez", "Levotiroxina", domain.ServiceHomeDelivery, "Norte", -1, "14:30", domain.StatusCancelled},
	{"258369147", "Fernando Castro", "Enalapril", domain.ServiceInPersonVisit, "Centro", 6, "10:30", domain.StatusPending},
	{"369147258", "Patricia Morales", "Losartan", domain.ServiceHomeDelivery, "Sur", 7, "11:30", domain.StatusPending},
	{"741852963", "Jorge Ramírez", "Metformina", domain.ServiceHomeDelivery, "Norte", 8, "15:00", domain.StatusPending},
	{"852963741", "Sofía Herrera", "Insulina", domain.ServiceInPersonVisit, "Centro", -3, "08:30", domain.StatusDelivered},
}

// SeedSampleData fills an empty agenda with demo rows dated around today.
type SeedSampleData struct {
	store domain.Store
	now   Clock
}

func NewSeedSampleData(store domain.Store, now Clock) *SeedSampleData {
	return &SeedSampleData{store: store, now: now}
}

// Execute returns the number of rows written, 0 when the agenda already had data.
func (uc *SeedSampleData) Execute(ctx context.Context) (int, error) {
	today := uc.now()
	written := 0

	err := uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		if len(records) > 0 {
			return records, nil
		}

		out := make([]models.Appointment, 0, len(sampleRows))
		for _, r := range sampleRows {
			out = append(out, models.Appointment{
				ServiceID:   uuid.NewString(),
				PatientID:   r.patientID,
				PatientName: r.name,
				Medication:  r.medication,
				ServiceType: string(r.service),
				Site:        r.site,
				Date:        today.AddDate(0, 0, r.dayOffset).Format(domain.DateLayout),
				Time:        r.time,
				Status:      string(r.status),
			})
		}
		written = len(out)
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
