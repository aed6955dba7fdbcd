package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
)

type WorkingHoursHandler struct {
	schedule domain.Schedule
	highCost []string
}

func NewWorkingHoursHandler(schedule domain.Schedule, highCost []string) *WorkingHoursHandler {
	return &WorkingHoursHandler{schedule: schedule, highCost: highCost}
}

type WorkingDay struct {
	Weekday    int    `json:"weekday"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	LunchStart string `json:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty"`
}

// Days expands the schedule into one entry per weekday, Sunday first.
func (h *WorkingHoursHandler) Days() []WorkingDay {
	days := make([]WorkingDay, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		d := WorkingDay{Weekday: int(wd), Name: domain.WeekdayName(wd)}

		switch wd {
		case time.Sunday:
		case time.Saturday:
			d.Active = true
			d.StartTime = h.schedule.Saturday.Open
			d.EndTime = h.schedule.Saturday.Close
		default:
			d.Active = true
			d.StartTime = h.schedule.Weekday.Open
			d.EndTime = h.schedule.Weekday.Close
			d.LunchStart = h.schedule.LunchStart
			d.LunchEnd = h.schedule.LunchEnd
		}
		days = append(days, d)
	}
	return days
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"days":                  h.Days(),
		"min_lead_minutes":      int(h.schedule.MinLead / time.Minute),
		"high_cost_medications": h.highCost,
	})
}
