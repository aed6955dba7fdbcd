package appointment

import (
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves a record to Cancelled. Every other field is kept.
func Cancel(ap *models.Appointment) error {
	if Status(ap.Status) == StatusCancelled {
		return ErrAlreadyCancelled
	}

	ap.Status = string(StatusCancelled)
	return nil
}

// SetStatus applies any status, including leaving Cancelled.
func SetStatus(ap *models.Appointment, s Status) {
	ap.Status = string(s)
}
