package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/infrastructure/auth"
	"github.com/pdv/terminal/internal/infrastructure/session"
)

// Authenticator is the outbound port for the backend login call
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
}

// AuthHandler manages the operator session: login stores the issued token,
// logout discards it
type AuthHandler struct {
	BaseHandler
	backend  Authenticator
	sessions session.Store
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(backend Authenticator, sessions session.Store) *AuthHandler {
	return &AuthHandler{backend: backend, sessions: sessions}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/session", h.Session)
	}
}

// loginRequest carries the operator credentials
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionView reports whether a usable token is held
type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	TenantID      string `json:"tenant_id,omitempty"`
}

// Login authenticates against the backend and persists the issued token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.backend.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.sessions.SetToken(c.Request.Context(), resp.AccessToken); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.sessionFromToken(resp.AccessToken))
}

// Logout discards the persisted token
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.ClearToken(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Session reports the current authentication state. An expired or absent
// token reads as unauthenticated; no backend call is made.
func (h *AuthHandler) Session(c *gin.Context) {
	state, err := h.sessions.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.sessionFromToken(state.AccessToken))
}

// sessionFromToken inspects the token claims without verifying the
// signature; verification is the backend's job
func (h *AuthHandler) sessionFromToken(token string) sessionView {
	claims, err := auth.Inspect(token)
	if err != nil {
		return sessionView{Authenticated: false}
	}
	return sessionView{
		Authenticated: true,
		Username:      claims.Username,
		TenantID:      claims.TenantID,
	}
}
