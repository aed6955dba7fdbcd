package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pharma-scheduler/internal/export"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httpresp"
)

type Exporter interface {
	Export(ctx context.Context) (*export.Result, error)
}

type ExportHandler struct {
	exporter Exporter
}

// NewExportHandler accepts a nil exporter when S3 is not configured.
func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

func (h *ExportHandler) Create(c *gin.Context) {
	if h.exporter == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "export_disabled", "La exportación a S3 no está configurada.")
		return
	}

	res, err := h.exporter.Export(c.Request.Context())
	if err != nil {
		if httperr.Code(err) != "" {
			httperr.FromError(c, err)
			return
		}
		_ = c.Error(err)
		httperr.Write(c, http.StatusBadGateway, "export_failed", "No se pudo subir la agenda a S3.")
		return
	}

	httpresp.Created(c, res)
}
