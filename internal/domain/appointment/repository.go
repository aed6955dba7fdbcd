package appointment

import (
	"context"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// Store owns the agenda table. Every call reads or replaces the whole table.
type Store interface {
	ReadAll(ctx context.Context) ([]models.Appointment, error)

	WriteAll(ctx context.Context, records []models.Appointment) error

	// Mutate runs one read-modify-write cycle. fn receives the current
	// records and returns the full set to persist. When fn returns an error
	// nothing is written.
	Mutate(
		ctx context.Context,
		fn func(records []models.Appointment) ([]models.Appointment, error),
	) error
}
