package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/dto"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pharma-scheduler/internal/messages"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	createUC *ucAppointment.CreateAppointment
	queryUC  *ucAppointment.QueryAppointments
	statusUC *ucAppointment.UpdateStatus
	cancelUC *ucAppointment.SoftCancel
	now      ucAppointment.Clock
}

func NewServiceHandler(
	createUC *ucAppointment.CreateAppointment,
	queryUC *ucAppointment.QueryAppointments,
	statusUC *ucAppointment.UpdateStatus,
	cancelUC *ucAppointment.SoftCancel,
	now ucAppointment.Clock,
) *ServiceHandler {
	return &ServiceHandler{
		createUC: createUC,
		queryUC:  queryUC,
		statusUC: statusUC,
		cancelUC: cancelUC,
		now:      now,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res, err := h.createUC.Execute(requestContext(c), req.ToDomain())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if !res.Decision.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error_code": string(res.Decision.Reason),
			"message":    messages.Rejected(res.Decision.Message),
			"decision":   res.Decision,
		})
		return
	}

	httpresp.Created(c, gin.H{
		"message":    messages.Created(res.Record, res.HighCost),
		"service_id": res.ServiceID,
		"service":    res.Record,
		"high_cost":  res.HighCost,
	})
}

// ======================================================
// QUERIES
// ======================================================

// List answers the three convenience modes: from+to, date+time and date.
func (h *ServiceHandler) List(c *gin.Context) {
	now := h.now()
	date := resolveDate(c.Query("date"), now)
	hm := strings.TrimSpace(c.Query("time"))
	from := resolveDate(c.Query("from"), now)
	to := resolveDate(c.Query("to"), now)

	var (
		records []models.Appointment
		message string
		err     error
	)

	switch {
	case from != "" || to != "":
		records, err = h.queryUC.ByDateRange(c.Request.Context(), from, to)
		message = messages.ByDateRange(from, to, records)
	case date != "" && hm != "":
		records, err = h.queryUC.ByDateTime(c.Request.Context(), date, hm)
		message = messages.ByDateTime(date, hm, records)
	case date != "":
		records, err = h.queryUC.ByDate(c.Request.Context(), date)
		message = messages.ByDate(date, records)
	default:
		err = httperr.Invalid("date", "indica date, date y time, o from y to")
	}

	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, message, records)
}

func (h *ServiceHandler) ByPatient(c *gin.Context) {
	patientID := strings.TrimSpace(c.Query("patient_id"))
	name := strings.TrimSpace(c.Query("name"))

	records, err := h.queryUC.ByPatient(c.Request.Context(), patientID, name)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, messages.ByPatient(patientID, name, records), records)
}

// Search finds the active services a cancellation request refers to.
func (h *ServiceHandler) Search(c *gin.Context) {
	var criteria ucAppointment.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		httperr.BadRequest(c, "invalid_request", "Parámetros inválidos.")
		return
	}
	criteria.Date = resolveDate(criteria.Date, h.now())

	records, err := h.queryUC.SearchForCancellation(c.Request.Context(), criteria)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	labels := []messages.Criterion{
		{Label: "ID paciente", Value: criteria.PatientID},
		{Label: "nombre", Value: criteria.Name},
		{Label: "fecha", Value: criteria.Date},
		{Label: "hora", Value: criteria.Time},
		{Label: "medicamento", Value: criteria.Medication},
	}
	httpresp.List(c, messages.SearchResult(labels, records), records)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *ServiceHandler) Cancel(c *gin.Context) {
	prior, err := h.cancelUC.Execute(requestContext(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ServiceDTO{
		Message: messages.SoftCancelled(*prior),
		Service: *prior,
	})
}

func (h *ServiceHandler) UpdateStatusByID(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.statusUC.ByID(requestContext(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ServiceDTO{Message: messages.StatusUpdated(*ap), Service: *ap})
}

// UpdateStatusByKey answers 409 with the candidates when the patient, date
// and time match more than one service.
func (h *ServiceHandler) UpdateStatusByKey(c *gin.Context) {
	var req dto.StatusByKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	date := resolveDate(req.Date, h.now())

	ap, err := h.statusUC.Execute(requestContext(c), req.PatientID, date, req.Time, req.Status)
	if err != nil {
		var amb *domain.AmbiguousMatchError
		if errors.As(err, &amb) {
			c.JSON(http.StatusConflict, gin.H{
				"error_code": "ambiguous_match",
				"message":    messages.Ambiguous(amb.Candidates),
				"candidates": amb.Candidates,
			})
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ServiceDTO{Message: messages.StatusUpdated(*ap), Service: *ap})
}
