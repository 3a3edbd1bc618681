package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/pdv/terminal/internal/application/catalog"
	appcheckout "github.com/pdv/terminal/internal/application/checkout"
	"github.com/pdv/terminal/internal/domain/catalog"
	"github.com/pdv/terminal/internal/domain/checkout"
)

// CheckoutHandler drives the checkout session: cart mutations, table/seat
// assignment, mode and payment selection, and finalization. Product and
// table references are resolved against the loader's current snapshot.
type CheckoutHandler struct {
	BaseHandler
	service *appcheckout.Service
	loader  *appcatalog.Loader
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(service *appcheckout.Service, loader *appcatalog.Loader) *CheckoutHandler {
	return &CheckoutHandler{service: service, loader: loader}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("", h.Status)
		checkout.POST("/finalize", h.Finalize)
		checkout.PUT("/mode", h.SetMode)
		checkout.PUT("/payment-method", h.SetPaymentMethod)

		cart := checkout.Group("/cart")
		{
			cart.POST("/items", h.AddProduct)
			cart.PATCH("/items/:productId", h.ChangeQuantity)
			cart.DELETE("/items/:productId", h.RemoveLine)
			cart.DELETE("", h.ClearCart)
		}

		table := checkout.Group("/table")
		{
			table.PUT("", h.ChooseTable)
			table.PUT("/seat", h.SetSeat)
			table.PUT("/customer", h.SetCustomer)
			table.DELETE("/customer", h.ClearCustomer)
		}
	}
}

// Status returns the current checkout session view
func (h *CheckoutHandler) Status(c *gin.Context) {
	h.Success(c, h.service.Status())
}

// addProductRequest selects the product to add
type addProductRequest struct {
	ProductID uuid.UUID `json:"produto_id" binding:"required"`
}

// AddProduct adds one unit of a snapshot product to the cart
func (h *CheckoutHandler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	snapshot := h.loader.Snapshot()
	product := snapshot.ProductByID(req.ProductID)
	if product == nil {
		h.NotFound(c, "Product not found in current catalog")
		return
	}

	h.Success(c, h.service.AddProduct(*product))
}

// changeQuantityRequest carries a signed quantity delta
type changeQuantityRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// ChangeQuantity applies a quantity delta to a cart line
func (h *CheckoutHandler) ChangeQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	h.Success(c, h.service.ChangeQuantity(productID, req.Delta))
}

// RemoveLine removes a cart line unconditionally
func (h *CheckoutHandler) RemoveLine(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	h.Success(c, h.service.RemoveLine(productID))
}

// ClearCart empties the cart
func (h *CheckoutHandler) ClearCart(c *gin.Context) {
	h.Success(c, h.service.ClearCart())
}

// setModeRequest selects the order mode
type setModeRequest struct {
	Mode string `json:"modo" binding:"required,oneof=counter table"`
}

// SetMode switches between counter and table mode
func (h *CheckoutHandler) SetMode(c *gin.Context) {
	var req setModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.service.SetMode(checkout.OrderMode(req.Mode))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// setPaymentRequest selects the counter-sale payment method
type setPaymentRequest struct {
	Method string `json:"forma_pagamento" binding:"required,oneof=dinheiro cartao mpesa emola"`
}

// SetPaymentMethod selects how the counter sale is settled
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	var req setPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.service.SetPaymentMethod(checkout.PaymentMethod(req.Method))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// chooseTableRequest selects a snapshot table
type chooseTableRequest struct {
	TableNumber int `json:"mesa_id" binding:"required,min=1"`
}

// ChooseTable binds the order to a table from the current snapshot
func (h *CheckoutHandler) ChooseTable(c *gin.Context) {
	var req chooseTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	snapshot := h.loader.Snapshot()
	table := snapshot.TableByNumber(req.TableNumber)
	if table == nil {
		h.NotFound(c, "Table not found in current snapshot")
		return
	}

	view, err := h.service.ChooseTable(*table)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// setSeatRequest selects a seat at the chosen table
type setSeatRequest struct {
	SeatNumber int `json:"lugar_numero" binding:"required,min=1"`
}

// SetSeat records the seat number for the chosen table
func (h *CheckoutHandler) SetSeat(c *gin.Context) {
	var req setSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.service.SetSeat(req.SeatNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// setCustomerRequest binds a customer the UI already looked up
type setCustomerRequest struct {
	CustomerID   uuid.UUID `json:"cliente_id" binding:"required"`
	CustomerName string    `json:"cliente_nome"`
}

// SetCustomer binds a customer to the order
func (h *CheckoutHandler) SetCustomer(c *gin.Context) {
	var req setCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.service.SetCustomer(catalog.Customer{ID: req.CustomerID, Name: req.CustomerName})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ClearCustomer detaches the counter-sale customer
func (h *CheckoutHandler) ClearCustomer(c *gin.Context) {
	h.Success(c, h.service.ClearCustomer())
}

// Finalize validates and submits the composed order
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	receipt, err := h.service.Checkout(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}
