package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/pdv/terminal/internal/application/catalog"
	"github.com/pdv/terminal/internal/domain/catalog"
)

// CustomerSearcher is the outbound port for the seat-assignment customer
// lookup
type CustomerSearcher interface {
	SearchCustomers(ctx context.Context, query string) ([]catalog.Customer, error)
}

// CatalogHandler exposes the snapshot and the loader controls. The UI
// calls pause when it opens a blocking selection dialog and resume when it
// closes, so a background refresh cannot replace the table list mid-selection.
type CatalogHandler struct {
	BaseHandler
	loader    *appcatalog.Loader
	customers CustomerSearcher
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(loader *appcatalog.Loader, customers CustomerSearcher) *CatalogHandler {
	return &CatalogHandler{loader: loader, customers: customers}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cat := rg.Group("/catalog")
	{
		cat.GET("/snapshot", h.Snapshot)
		cat.POST("/refresh", h.Refresh)
		cat.POST("/pause", h.Pause)
		cat.POST("/resume", h.Resume)
	}

	rg.GET("/customers", h.SearchCustomers)
}

// Snapshot returns the currently held catalog snapshot
func (h *CatalogHandler) Snapshot(c *gin.Context) {
	h.Success(c, h.loader.Snapshot())
}

// Refresh schedules an immediate snapshot refresh, called when the
// operator's window regains focus or visibility
func (h *CatalogHandler) Refresh(c *gin.Context) {
	h.loader.RefreshNow()
	h.NoContent(c)
}

// Pause holds the refresh gate for an open selection dialog
func (h *CatalogHandler) Pause(c *gin.Context) {
	h.loader.Suspend()
	h.NoContent(c)
}

// Resume releases the refresh gate when the dialog closes
func (h *CatalogHandler) Resume(c *gin.Context) {
	h.loader.Resume()
	h.NoContent(c)
}

// SearchCustomers proxies the customer lookup for the seat-assignment
// dialog; debouncing is the UI's job
func (h *CatalogHandler) SearchCustomers(c *gin.Context) {
	results, err := h.customers.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
