package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/pdv/terminal/internal/domain/shared"
)

// Event types raised by the checkout engine
const (
	EventTypeCheckoutCompleted = "checkout.completed"
)

// CheckoutCompletedEvent is raised after the backend confirmed an order or
// sale. Listeners use it to refresh lists and show the success notification.
type CheckoutCompletedEvent struct {
	shared.BaseDomainEvent
	Mode      OrderMode       `json:"mode"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	TableNum  int             `json:"table_number,omitempty"`
}

// NewCheckoutCompletedEvent creates a new checkout completed event
func NewCheckoutCompletedEvent(tenantID string, mode OrderMode, total decimal.Decimal, itemCount, tableNumber int) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutCompleted, tenantID),
		Mode:            mode,
		Total:           total,
		ItemCount:       itemCount,
		TableNum:        tableNumber,
	}
}
