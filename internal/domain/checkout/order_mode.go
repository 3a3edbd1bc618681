package checkout

// OrderMode selects which submission shape the dispatcher produces:
// a kitchen-routed table order settled later, or a direct counter sale
// paid immediately.
type OrderMode string

const (
	// OrderModeCounter is the default: an immediately-paid direct sale
	OrderModeCounter OrderMode = "counter"
	// OrderModeTable routes the order to a table, settled later
	OrderModeTable OrderMode = "table"
)

// IsValid checks if the mode is a valid OrderMode
func (m OrderMode) IsValid() bool {
	return m == OrderModeCounter || m == OrderModeTable
}

// String returns the string representation of OrderMode
func (m OrderMode) String() string {
	return string(m)
}

// PaymentMethod identifies how a counter sale is settled
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "dinheiro"
	PaymentMethodCard  PaymentMethod = "cartao"
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodEmola PaymentMethod = "emola"
)

// DefaultPaymentMethod is applied after every successful checkout
const DefaultPaymentMethod = PaymentMethodCash

// IsValid checks if the payment method is known
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMpesa, PaymentMethodEmola:
		return true
	}
	return false
}
