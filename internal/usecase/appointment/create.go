package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	"github.com/BruksfildServices01/pharma-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// Clock returns the current time in the pharmacy's time zone.
type Clock func() time.Time

// Rules are the booking rules applied on creation.
type Rules struct {
	Schedule domain.Schedule
	HighCost []string
}

func DefaultRules() Rules {
	return Rules{
		Schedule: domain.DefaultSchedule(),
		HighCost: domain.DefaultHighCostMedications,
	}
}

// ======================================================
// RESULT
// ======================================================

// CreateResult carries either the stored record or the eligibility rejection.
// A rejected booking is not an error: Decision.OK is false and nothing was
// written.
type CreateResult struct {
	ServiceID string             `json:"service_id,omitempty"`
	Record    models.Appointment `json:"record"`
	HighCost  bool               `json:"high_cost"`
	Decision  domain.Decision    `json:"decision"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	store domain.Store
	audit *audit.Dispatcher
	rules Rules
	now   Clock

	newID func() string
}

func NewCreateAppointment(
	store domain.Store,
	audit *audit.Dispatcher,
	rules Rules,
	now Clock,
) *CreateAppointment {
	return &CreateAppointment{
		store: store,
		audit: audit,
		rules: rules,
		now:   now,
		newID: uuid.NewString,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.NewAppointment,
) (*CreateResult, error) {

	now := uc.now()

	// --------------------------------------------------
	// Relative dates ("mañana", "today", ...)
	// --------------------------------------------------
	in.Date = dates.ResolveRelative(in.Date, now)

	// --------------------------------------------------
	// Shape
	// --------------------------------------------------
	ap, err := domain.ValidateShape(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Eligibility
	// --------------------------------------------------
	decision := uc.rules.Schedule.ValidateAppointment(ap.Date, ap.Time, now)
	if !decision.OK {
		return &CreateResult{Record: ap, Decision: decision}, nil
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap.ServiceID = uc.newID()

	if err := uc.store.Mutate(ctx, func(records []models.Appointment) ([]models.Appointment, error) {
		return append(records, ap), nil
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "service_created",
		Entity:   "service",
		EntityID: ap.ServiceID,
		Metadata: map[string]string{
			"patient_id": ap.PatientID,
			"date":       ap.Date,
			"time":       ap.Time,
		},
	})

	return &CreateResult{
		ServiceID: ap.ServiceID,
		Record:    ap,
		HighCost:  domain.IsHighCost(ap.Medication, uc.rules.HighCost),
		Decision:  decision,
	}, nil
}
