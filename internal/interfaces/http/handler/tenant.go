package handler

import (
	"github.com/gin-gonic/gin"

	apptenant "github.com/pdv/terminal/internal/application/tenant"
	"github.com/pdv/terminal/internal/domain/tenant"
	"github.com/pdv/terminal/internal/infrastructure/api"
)

// TenantHandler exposes the active tenant context and establishment
// management
type TenantHandler struct {
	BaseHandler
	service *apptenant.Service
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(service *apptenant.Service) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterRoutes registers tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.GET("", h.List)
		tenants.POST("", h.Create)
		tenants.PUT("/:id", h.Update)
		tenants.DELETE("/:id", h.Deactivate)
	}

	active := rg.Group("/tenant")
	{
		active.GET("", h.Current)
		active.PUT("", h.Switch)
	}
}

// Current returns the active tenant context
func (h *TenantHandler) Current(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, current)
}

// switchRequest selects the tenant to activate. An absent id clears the
// selection.
type switchRequest struct {
	TenantID     string `json:"tenant_id"`
	BusinessKind string `json:"tipo_negocio" binding:"omitempty,oneof=mercearia restaurante"`
}

// Switch changes the active tenant and broadcasts the change
func (h *TenantHandler) Switch(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	err := h.service.Switch(c.Request.Context(), req.TenantID, tenant.BusinessKind(req.BusinessKind))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	current, err := h.service.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, current)
}

// List fetches all establishments visible to the operator
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenants)
}

// createTenantRequest registers a new establishment
type createTenantRequest struct {
	Name         string `json:"nome" binding:"required"`
	BusinessKind string `json:"tipo_negocio" binding:"required,oneof=mercearia restaurante"`
}

// Create registers a new establishment
func (h *TenantHandler) Create(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), api.CreateTenantRequest{
		Name:         req.Name,
		BusinessKind: req.BusinessKind,
		Active:       true,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// updateTenantRequest changes an establishment
type updateTenantRequest struct {
	Name         *string `json:"nome"`
	BusinessKind *string `json:"tipo_negocio" binding:"omitempty,oneof=mercearia restaurante"`
	Active       *bool   `json:"ativo"`
}

// Update changes an establishment's name, kind or active flag
func (h *TenantHandler) Update(c *gin.Context) {
	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	err := h.service.Update(c.Request.Context(), c.Param("id"), api.UpdateTenantRequest{
		Name:         req.Name,
		BusinessKind: req.BusinessKind,
		Active:       req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate removes an establishment
func (h *TenantHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
