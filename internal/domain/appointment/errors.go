package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

var (
	ErrStoreLocked      = httperr.ErrBusiness("store_locked")
	ErrStore            = httperr.ErrBusiness("store_error")
	ErrStoreConflict    = httperr.ErrBusiness("store_conflict")
	ErrNotFound         = httperr.ErrBusiness("service_not_found")
	ErrAlreadyCancelled = httperr.ErrBusiness("already_cancelled")
	ErrAmbiguousMatch   = httperr.ErrBusiness("ambiguous_match")
)

// AmbiguousMatchError is returned when a non-unique key matched more than one
// record. Candidates lets the caller ask which one was meant.
type AmbiguousMatchError struct {
	Candidates []models.Appointment
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous_match: %d records", len(e.Candidates))
}

func (e *AmbiguousMatchError) Is(target error) bool {
	return target == ErrAmbiguousMatch
}
