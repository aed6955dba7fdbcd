package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// HardDelete removes rows from the agenda. It is irreversible.
type HardDelete struct {
	store domain.Store
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewHardDelete(
	store domain.Store,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *HardDelete {
	return &HardDelete{
		store: store,
		audit: audit,
		log:   log,
	}
}

// Execute removes the service and returns the removed record. The id is
// matched exactly after trimming, then ignoring spaces and case.
func (uc *HardDelete) Execute(
	ctx context.Context,
	serviceID string,
) (*models.Appointment, error) {

	id := strings.TrimSpace(serviceID)
	if id == "" {
		return nil, httperr.Invalid("service_id", "ID vacío")
	}

	var removed models.Appointment

	err := uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		idx := indexByID(records, id)
		if idx < 0 {
			idx = indexByLooseID(records, id)
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: ID %s", domain.ErrNotFound, id)
		}

		removed = records[idx]
		return append(records[:idx:idx], records[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("service_id", removed.ServiceID).Msg("service deleted")

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: removed.ServiceID,
		Metadata: removed,
	})

	return &removed, nil
}

func looseID(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func indexByLooseID(records []models.Appointment, id string) int {
	want := looseID(id)
	for i := range records {
		if looseID(records[i].ServiceID) == want {
			return i
		}
	}
	return -1
}

// ItemError is the failure of one id in a batch.
type ItemError struct {
	ServiceID string `json:"service_id"`
	Err       error  `json:"-"`
	Message   string `json:"message"`
}

type BatchResult struct {
	Requested int                  `json:"requested"`
	Deleted   []models.Appointment `json:"deleted"`
	Errors    []ItemError          `json:"errors"`
}

// Batch deletes each id independently. A failure never stops the remaining ids.
func (uc *HardDelete) Batch(ctx context.Context, ids []string) BatchResult {
	res := BatchResult{
		Requested: len(ids),
		Deleted:   []models.Appointment{},
		Errors:    []ItemError{},
	}

	for _, id := range ids {
		ap, err := uc.Execute(ctx, id)
		if err != nil {
			uc.log.Warn().Err(err).Str("service_id", id).Msg("batch delete item failed")
			res.Errors = append(res.Errors, ItemError{ServiceID: id, Err: err, Message: err.Error()})
			continue
		}
		res.Deleted = append(res.Deleted, *ap)
	}
	return res
}
