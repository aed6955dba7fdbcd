package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// UpdateStatus changes the status of one service. Any status may move to any
// other, Cancelled included.
type UpdateStatus struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	store domain.Store,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		store: store,
		audit: audit,
	}
}

// Execute locates the service by patient, date and time. When the key matches
// more than one record nothing is changed and an *AmbiguousMatchError lists
// the candidates; the caller then picks one with ByID.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	patientID string,
	date string,
	hm string,
	status string,
) (*models.Appointment, error) {

	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	key := domain.Filter{
		PatientID:   strings.TrimSpace(patientID),
		Date:        strings.TrimSpace(date),
		Time:        strings.TrimSpace(hm),
		AllStatuses: true,
	}
	if key.PatientID == "" || key.Date == "" || key.Time == "" {
		return nil, httperr.Invalid("key", "se requieren paciente, fecha y hora")
	}

	var updated models.Appointment
	var previous string

	err = uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		idx := -1
		var candidates []models.Appointment
		for i := range records {
			if key.Match(&records[i]) {
				idx = i
				candidates = append(candidates, records[i])
			}
		}

		switch len(candidates) {
		case 0:
			return nil, fmt.Errorf("%w: paciente %s el %s a las %s",
				domain.ErrNotFound, key.PatientID, key.Date, key.Time)
		case 1:
		default:
			return nil, &domain.AmbiguousMatchError{Candidates: candidates}
		}

		previous = records[idx].Status
		domain.SetStatus(&records[idx], st)
		updated = records[idx]
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, updated, previous)
	return &updated, nil
}

// ByID changes the status of the service with the given id.
func (uc *UpdateStatus) ByID(
	ctx context.Context,
	serviceID string,
	status string,
) (*models.Appointment, error) {

	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(serviceID)

	var updated models.Appointment
	var previous string

	err = uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		idx := indexByID(records, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: ID %s", domain.ErrNotFound, id)
		}

		previous = records[idx].Status
		domain.SetStatus(&records[idx], st)
		updated = records[idx]
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, updated, previous)
	return &updated, nil
}

func (uc *UpdateStatus) dispatch(ctx context.Context, ap models.Appointment, previous string) {
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "service_status_updated",
		Entity:   "service",
		EntityID: ap.ServiceID,
		Metadata: map[string]string{
			"from": previous,
			"to":   ap.Status,
		},
	})
}

// indexByID returns the position of the record whose trimmed id equals id, or -1.
func indexByID(records []models.Appointment, id string) int {
	for i := range records {
		if strings.TrimSpace(records[i].ServiceID) == id {
			return i
		}
	}
	return -1
}
