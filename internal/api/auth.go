package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/auth"
)

// AuthHandler serves the demo login.
type AuthHandler struct {
	responder
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(r responder) *AuthHandler {
	return &AuthHandler{responder: r}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Login checks the credentials and returns the matching profile.
func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p loginPayload
		if !h.bindJSON(c, &p) {
			return
		}
		profile, err := auth.Login(p.Email, p.Password, p.Role)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			h.respondErr(c, err)
			return
		}
		h.logger.Info("login", "user_id", profile.ID, "role", profile.Role)
		h.ok(c, http.StatusOK, profile, "Login successful")
	}
}
