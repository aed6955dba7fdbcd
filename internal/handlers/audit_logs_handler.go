package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/infra/repository"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo *repository.AuditLogGormRepository
}

// NewAuditLogsHandler accepts a nil repo when no audit database is configured.
func NewAuditLogsHandler(repo *repository.AuditLogGormRepository) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.repo == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "audit_disabled", "El registro de auditoría está desactivado.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := repository.AuditLogQuery{
		Action:   c.Query("action"),
		EntityID: c.Query("service_id"),
		Actor:    c.Query("actor"),
		Page:     page,
		Limit:    limit,
	}

	if s := c.Query("from"); s != "" {
		from, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "La fecha 'from' debe tener formato YYYY-MM-DD.")
			return
		}
		q.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "La fecha 'to' debe tener formato YYYY-MM-DD.")
			return
		}
		q.To = to
	}

	logs, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Error al listar los registros de auditoría.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
