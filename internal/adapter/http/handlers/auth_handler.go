package handlers

import (
	"net/http"
	"strings"
	"time"

	request "garage_admin/internal/adapter/http/dto/request"
	response "garage_admin/internal/adapter/http/dto/response"
	"garage_admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for browser callers.
const SessionCookie = "session"

type AuthHandler struct {
	usecase usecase.IAuthUseCase
	maxAge  time.Duration
}

func NewAuthHandler(uc usecase.IAuthUseCase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{usecase: uc, maxAge: sessionTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	token, user, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.maxAge.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, response.LoginResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.usecase.Me(c.Request.Context(), SessionToken(c))
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, user)
}

// SessionToken reads the bearer token, falling back to the session cookie.
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(SessionCookie); err == nil {
		return v
	}
	return ""
}

// RequireSession rejects requests without a valid session.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.usecase.Me(c.Request.Context(), SessionToken(c))
		if err != nil {
			appErr := mapAuthError(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
