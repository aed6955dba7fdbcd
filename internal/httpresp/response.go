package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse pairs the staff-facing text with the records it describes.
type ListResponse[T any] struct {
	Message string `json:"message"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, message string, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Message: message,
		Data:    data,
		Total:   len(data),
	})
}
