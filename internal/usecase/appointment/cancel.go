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

// SoftCancel moves a service to Cancelled and keeps the row.
type SoftCancel struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewSoftCancel(
	store domain.Store,
	audit *audit.Dispatcher,
) *SoftCancel {
	return &SoftCancel{
		store: store,
		audit: audit,
	}
}

// Execute returns the record as it was before the cancellation.
func (uc *SoftCancel) Execute(
	ctx context.Context,
	serviceID string,
) (*models.Appointment, error) {

	id := strings.TrimSpace(serviceID)
	if id == "" {
		return nil, httperr.Invalid("service_id", "el ID_Servicio es obligatorio")
	}

	var prior models.Appointment

	err := uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		idx := indexByID(records, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: ID %s", domain.ErrNotFound, id)
		}

		prior = records[idx]
		if err := domain.Cancel(&records[idx]); err != nil {
			return nil, fmt.Errorf("%w: ID %s", err, id)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "service_cancelled",
		Entity:   "service",
		EntityID: prior.ServiceID,
		Metadata: map[string]string{"previous_status": prior.Status},
	})

	return &prior, nil
}
