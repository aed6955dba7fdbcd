package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe reports who the audit trail will name for this request.
func (h *MeHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operator": audit.ActorFrom(requestContext(c)),
	})
}
