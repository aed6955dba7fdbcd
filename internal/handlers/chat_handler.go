package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pharma-scheduler/internal/cancelflow"
	"github.com/BruksfildServices01/pharma-scheduler/internal/dto"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httpresp"
)

// ChatHandler runs one turn of the delete-by-name conversation. Replies with
// applicable=false mean the text belongs to another assistant flow.
type ChatHandler struct {
	flow *cancelflow.Controller
}

func NewChatHandler(flow *cancelflow.Controller) *ChatHandler {
	return &ChatHandler{flow: flow}
}

func (h *ChatHandler) Turn(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Se requieren session_id y text.")
		return
	}

	reply, err := h.flow.Handle(requestContext(c), req.SessionID, req.Text)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, reply)
}
