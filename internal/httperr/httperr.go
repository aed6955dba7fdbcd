package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Locked(c *gin.Context, code, message string) {
	Write(c, http.StatusLocked, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps the error taxonomy of the scheduling core to a response.
func FromError(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_error",
			Message: ve.Error(),
			Details: gin.H{"field": ve.Field},
		})
		return
	}

	switch Code(err) {
	case "store_locked":
		Locked(c, "store_locked", "La agenda está bloqueada por otro programa. Ciérrala y vuelve a intentar.")
	case "store_conflict":
		Conflict(c, "store_conflict", "La agenda cambió mientras se guardaba. Vuelve a intentar.")
	case "service_not_found":
		NotFound(c, "service_not_found", "No se encontró el servicio"+suffix(err))
	case "already_cancelled":
		Conflict(c, "already_cancelled", "El servicio ya está cancelado"+suffix(err))
	case "ambiguous_match":
		Conflict(c, "ambiguous_match", "Hay más de un servicio que coincide. Indica el ID_Servicio.")
	case "store_error":
		Internal(c, "store_error", "Error al acceder a la agenda.")
	default:
		Internal(c, "internal_error", "Error interno.")
	}
}

// suffix returns the context wrapped around a business code, e.g. " (ID 42)"
// for "service_not_found: ID 42".
func suffix(err error) string {
	code := Code(err)
	msg := err.Error()
	if code == "" || !strings.HasPrefix(msg, code+": ") {
		return ""
	}
	return " (" + strings.TrimPrefix(msg, code+": ") + ")"
}
