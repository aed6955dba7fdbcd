package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pharma-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pharma-scheduler/internal/messages"
	ucAppointment "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

// TimeHandler exposes the pharmacy clock and the bookable slots of a day.
type TimeHandler struct {
	availabilityUC *ucAppointment.GetAvailability
	schedule       domain.Schedule
	now            func() time.Time
}

func NewTimeHandler(
	availabilityUC *ucAppointment.GetAvailability,
	schedule domain.Schedule,
	now func() time.Time,
) *TimeHandler {
	return &TimeHandler{
		availabilityUC: availabilityUC,
		schedule:       schedule,
		now:            now,
	}
}

func (h *TimeHandler) Now(c *gin.Context) {
	httpresp.OK(c, dates.ContextAt(h.now()))
}

func (h *TimeHandler) Availability(c *gin.Context) {
	step, err := parseStep(c.Query("step"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	date := resolveDate(c.Query("date"), h.now())
	if date == "" {
		httperr.FromError(c, httperr.Invalid("date", "la fecha es obligatoria"))
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), date, step)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	window, open := h.schedule.BusinessHours(date)
	hours := gin.H{"open": open}
	if open {
		hours["window"] = window
		if d, _ := time.Parse(domain.DateLayout, date); d.Weekday() != time.Saturday {
			hours["lunch"] = domain.Window{Open: h.schedule.LunchStart, Close: h.schedule.LunchEnd}
		}
	}

	httpresp.OK(c, gin.H{
		"message":        messages.Availability(date, starts),
		"date":           date,
		"business_hours": hours,
		"slots":          slots,
	})
}
