package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	"github.com/BruksfildServices01/pharma-scheduler/internal/middleware"
)

const operatorHeader = "X-Operator"

// requestContext returns the request context carrying the operator for the
// audit trail. A verified token wins over the X-Operator header, which is
// only honoured when authentication is disabled.
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if c.GetString(middleware.ContextOperator) != "" {
		return ctx
	}
	if op := strings.TrimSpace(c.GetHeader(operatorHeader)); op != "" {
		return audit.WithActor(ctx, op)
	}
	return ctx
}
