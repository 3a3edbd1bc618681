package checkout

import "github.com/pdv/terminal/internal/domain/shared"

// Local validation failures. These block submission before any request is
// sent and never reach the network.
var (
	// ErrEmptyCart is returned when checkout is attempted with no lines
	ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	// ErrTableRequired is returned when a table-mode checkout is attempted
	// before the table/seat assignment is complete
	ErrTableRequired = shared.NewDomainError("TABLE_REQUIRED", "Complete the table and seat selection before finalizing")
	// ErrCheckoutInFlight is returned when finalize is pressed while a
	// previous submission has not completed yet
	ErrCheckoutInFlight = shared.NewDomainError("CHECKOUT_IN_FLIGHT", "A checkout is already being submitted")
)
