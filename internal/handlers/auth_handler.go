package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/pharma-scheduler/internal/config"
	"github.com/BruksfildServices01/pharma-scheduler/internal/dto"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
)

const tokenTTL = 12 * time.Hour

type AuthHandler struct {
	config *config.Config
	now    func() time.Time
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg, now: time.Now}
}

// Login exchanges the shared operator key for a bearer token naming the
// operator.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.config.JWTSecret == "" || h.config.OperatorKeyHash == "" {
		httperr.Write(c, http.StatusServiceUnavailable, "auth_disabled", "La autenticación no está configurada.")
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	operator := strings.ToLower(strings.TrimSpace(req.Operator))
	if operator == "" {
		httperr.BadRequest(c, "invalid_request", "Indica el operador.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.OperatorKeyHash), []byte(req.Key)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	token, exp, err := h.generateToken(operator)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar el token.")
		return
	}

	c.JSON(http.StatusOK, dto.LoginDTO{
		Token:     token,
		Operator:  operator,
		ExpiresAt: exp,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(operator string) (string, time.Time, error) {
	now := h.now()
	exp := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"sub": operator,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, exp, err
}
