package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdv/terminal/internal/domain/checkout"
)

// CartLineView is the read model of one cart line
type CartLineView struct {
	ProductID   uuid.UUID       `json:"produto_id"`
	ProductName string          `json:"produto_nome"`
	UnitPrice   decimal.Decimal `json:"preco_unitario"`
	Quantity    int64           `json:"quantidade"`
	LineTotal   decimal.Decimal `json:"subtotal"`
}

// AssignmentView is the read model of the table/seat assignment
type AssignmentView struct {
	State        checkout.AssignmentState `json:"estado"`
	TableNumber  int                      `json:"mesa_id,omitempty"`
	Capacity     int                      `json:"capacidade,omitempty"`
	SeatNumber   int                      `json:"lugar_numero,omitempty"`
	CustomerID   *uuid.UUID               `json:"cliente_id,omitempty"`
	CustomerName string                   `json:"cliente_nome,omitempty"`
	Ready        bool                     `json:"pronto"`
}

// StatusView is the full read model of the checkout session, rendered by
// the UI after every mutation
type StatusView struct {
	Mode          checkout.OrderMode     `json:"modo"`
	PaymentMethod checkout.PaymentMethod `json:"forma_pagamento"`
	Lines         []CartLineView         `json:"itens"`
	Total         decimal.Decimal        `json:"total"`
	TotalDisplay  string                 `json:"total_formatado"`
	ItemCount     int                    `json:"num_itens"`
	Assignment    AssignmentView         `json:"mesa"`
	InFlight      bool                   `json:"submetendo"`
}

// toLineViews maps domain cart lines to their read model
func toLineViews(lines []checkout.CartLine) []CartLineView {
	out := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		out = append(out, CartLineView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.Amount(),
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal.Amount(),
		})
	}
	return out
}

// toAssignmentView maps the domain assignment to its read model
func toAssignmentView(a *checkout.TableAssignment) AssignmentView {
	return AssignmentView{
		State:        a.State(),
		TableNumber:  a.TableNumber(),
		Capacity:     a.Capacity(),
		SeatNumber:   a.SeatNumber(),
		CustomerID:   a.CustomerID(),
		CustomerName: a.CustomerName(),
		Ready:        a.IsReady(),
	}
}
