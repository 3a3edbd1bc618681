package api

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdv/terminal/internal/domain/checkout"
)

// CheckoutRequest is the tagged union of the two submission shapes the
// dispatcher can produce. The marker method keeps the union closed so the
// submission branch is exhaustive and type-checked.
type CheckoutRequest interface {
	checkoutRequest()
	// Mode reports which submission path the request takes
	Mode() checkout.OrderMode
}

// OrderItem is a line of a table order. Unit prices are deliberately
// absent: the backend is authoritative for pricing on kitchen-routed
// orders.
type OrderItem struct {
	ProductID uuid.UUID `json:"produto_id"`
	Quantity  int64     `json:"quantidade"`
}

// TableOrderRequest creates a kitchen-routed order bound to a table,
// settled later
type TableOrderRequest struct {
	TableNumber int         `json:"mesa_id"`
	SeatNumber  int         `json:"lugar_numero,omitempty"`
	CustomerID  *uuid.UUID  `json:"cliente_id,omitempty"`
	Items       []OrderItem `json:"itens"`
}

func (TableOrderRequest) checkoutRequest() {}

// Mode reports the table submission path
func (TableOrderRequest) Mode() checkout.OrderMode { return checkout.OrderModeTable }

// SaleItem is a line of a direct sale. Client-computed prices are sent
// because counter sales are settled immediately at the terminal.
type SaleItem struct {
	ProductID uuid.UUID       `json:"produto_id"`
	Quantity  int64           `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// DirectSaleRequest creates an immediately-paid counter sale
type DirectSaleRequest struct {
	CustomerID    *uuid.UUID      `json:"cliente_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"forma_pagamento"`
	Items         []SaleItem      `json:"itens"`
}

func (DirectSaleRequest) checkoutRequest() {}

// Mode reports the counter submission path
func (DirectSaleRequest) Mode() checkout.OrderMode { return checkout.OrderModeCounter }

// Receipt is the normalized confirmation returned for either submission
// path
type Receipt struct {
	Reference string             `json:"reference"`
	Mode      checkout.OrderMode `json:"mode"`
	Total     decimal.Decimal    `json:"total"`
}

// orderCreatedResponse is the backend confirmation of a table order
type orderCreatedResponse struct {
	OrderUUID   string          `json:"pedido_uuid"`
	OrderNumber int64           `json:"pedido_id"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

// saleCreatedResponse is the backend confirmation of a direct sale
type saleCreatedResponse struct {
	ID     string          `json:"id"`
	Number int64           `json:"numero"`
	Total  decimal.Decimal `json:"total"`
}

// LoginResponse carries the session token issued by the backend
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// productDTO is the backend wire shape of a product
type productDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"nome"`
	Price      decimal.Decimal `json:"preco"`
	CategoryID *uuid.UUID      `json:"categoria_id"`
	Active     bool            `json:"ativo"`
}

// tableDTO is the backend wire shape of a table
type tableDTO struct {
	Number   int    `json:"numero"`
	Capacity int    `json:"capacidade"`
	Status   string `json:"status"`
}

// categoryDTO is the backend wire shape of a category
type categoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
}

// customerDTO is the backend wire shape of a customer
type customerDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
}

// tenantDTO is the backend wire shape of a tenant
type tenantDTO struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	BusinessKind string `json:"tipo_negocio"`
	Active       bool   `json:"ativo"`
}

// CreateTenantRequest registers a new establishment
type CreateTenantRequest struct {
	Name         string `json:"nome"`
	BusinessKind string `json:"tipo_negocio"`
	Active       bool   `json:"ativo"`
}

// UpdateTenantRequest changes an establishment's name, kind or active flag
type UpdateTenantRequest struct {
	Name         *string `json:"nome,omitempty"`
	BusinessKind *string `json:"tipo_negocio,omitempty"`
	Active       *bool   `json:"ativo,omitempty"`
}
