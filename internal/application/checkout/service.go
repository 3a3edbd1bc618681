package checkout

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pdv/terminal/internal/domain/catalog"
	"github.com/pdv/terminal/internal/domain/checkout"
	"github.com/pdv/terminal/internal/domain/shared"
	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/infrastructure/session"
)

// Gateway is the outbound submission port of the dispatcher
type Gateway interface {
	SubmitCheckout(ctx context.Context, req api.CheckoutRequest) (*api.Receipt, error)
}

// RefreshGate pauses background catalog refreshes for the duration of a
// checkout submission
type RefreshGate interface {
	Suspend()
	Resume()
}

// Service is the checkout dispatcher: it owns the cart, the table/seat
// assignment and the order mode, validates the composed order and selects
// the table-order or direct-sale submission path.
//
// All state is guarded by one mutex. Mutations happen only through operator
// actions; the background catalog refresh never touches this state.
type Service struct {
	mu             sync.Mutex
	cart           *checkout.Cart
	assignment     *checkout.TableAssignment
	mode           checkout.OrderMode
	payment        checkout.PaymentMethod
	saleCustomerID *uuid.UUID

	inFlight atomic.Bool

	gateway   Gateway
	sessions  session.Store
	publisher shared.EventPublisher
	gate      RefreshGate
	logger    *zap.Logger
}

// NewService creates a checkout dispatcher. gate may be nil when no catalog
// loader is wired (tests).
func NewService(gateway Gateway, sessions session.Store, publisher shared.EventPublisher, gate RefreshGate, logger *zap.Logger) *Service {
	return &Service{
		cart:       checkout.NewCart(),
		assignment: checkout.NewTableAssignment(),
		mode:       checkout.OrderModeCounter,
		payment:    checkout.DefaultPaymentMethod,
		gateway:    gateway,
		sessions:   sessions,
		publisher:  publisher,
		gate:       gate,
		logger:     logger,
	}
}

// AddProduct adds one unit of the product to the cart. Products without a
// strictly positive price are silently ignored.
func (s *Service) AddProduct(product catalog.Product) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddProduct(product.ID, product.Name, product.Price)
	return s.statusLocked()
}

// ChangeQuantity applies a quantity delta to the product's line, removing
// it when the result drops to zero or below
func (s *Service) ChangeQuantity(productID uuid.UUID, delta int64) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ChangeQuantity(productID, delta)
	return s.statusLocked()
}

// RemoveLine removes the product's line unconditionally
func (s *Service) RemoveLine(productID uuid.UUID) StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveLine(productID)
	return s.statusLocked()
}

// ClearCart empties the cart without touching the assignment
func (s *Service) ClearCart() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.statusLocked()
}

// SetMode switches between counter and table mode. Leaving table mode
// discards the entire table/seat assignment; the cart is kept so the
// operator does not re-enter items.
func (s *Service) SetMode(mode checkout.OrderMode) (StatusView, error) {
	if !mode.IsValid() {
		return StatusView{}, shared.NewDomainError("INVALID_MODE", "Unknown order mode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == checkout.OrderModeTable && mode != checkout.OrderModeTable {
		s.assignment.Reset()
	}
	s.mode = mode
	return s.statusLocked(), nil
}

// SetPaymentMethod selects how the counter sale is settled
func (s *Service) SetPaymentMethod(method checkout.PaymentMethod) (StatusView, error) {
	if !method.IsValid() {
		return StatusView{}, shared.NewDomainError("INVALID_PAYMENT", "Unknown payment method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = method
	return s.statusLocked(), nil
}

// ChooseTable binds the order to a table, implicitly switching to table
// mode
func (s *Service) ChooseTable(table catalog.Table) (StatusView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assignment.ChooseTable(table.Number, table.Capacity); err != nil {
		return s.statusLocked(), err
	}
	s.mode = checkout.OrderModeTable
	return s.statusLocked(), nil
}

// SetSeat records the seat number for the chosen table
func (s *Service) SetSeat(seatNumber int) (StatusView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.assignment.SetSeat(seatNumber)
	return s.statusLocked(), err
}

// SetCustomer binds a customer to the order. In table mode the customer
// belongs to the chosen seat; in counter mode it is attached to the sale
// directly.
func (s *Service) SetCustomer(customer catalog.Customer) (StatusView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == checkout.OrderModeTable {
		if err := s.assignment.SetCustomer(customer.ID, customer.Name); err != nil {
			return s.statusLocked(), err
		}
		return s.statusLocked(), nil
	}

	id := customer.ID
	s.saleCustomerID = &id
	return s.statusLocked(), nil
}

// ClearCustomer detaches the counter-sale customer
func (s *Service) ClearCustomer() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saleCustomerID = nil
	return s.statusLocked()
}

// Status returns the current checkout session read model
func (s *Service) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Checkout validates the composed order and submits it through the path
// selected by the current mode. Preconditions are checked in order and the
// first failure wins; local failures never reach the network.
//
// On success the cart is cleared, the assignment reset, the mode returned
// to counter and the payment method to its default. On failure every piece
// of state is left exactly as it was so the operator can retry.
func (s *Service) Checkout(ctx context.Context) (*api.Receipt, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, checkout.ErrCheckoutInFlight
	}
	defer s.inFlight.Store(false)

	req, summary, err := s.buildRequest()
	if err != nil {
		return nil, err
	}

	if s.gate != nil {
		s.gate.Suspend()
		defer s.gate.Resume()
	}

	receipt, err := s.gateway.SubmitCheckout(ctx, req)
	if err != nil {
		s.logger.Warn("checkout submission failed",
			zap.String("mode", summary.mode.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.resetAfterSuccess()

	state, loadErr := s.sessions.Load(ctx)
	if loadErr != nil {
		state = session.State{}
	}
	event := checkout.NewCheckoutCompletedEvent(
		state.TenantID, summary.mode, summary.total, summary.itemCount, summary.tableNumber)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish checkout completed event", zap.Error(err))
	}

	s.logger.Info("checkout completed",
		zap.String("mode", summary.mode.String()),
		zap.String("reference", receipt.Reference),
	)
	return receipt, nil
}

// InFlight reports whether a submission is currently pending
func (s *Service) InFlight() bool {
	return s.inFlight.Load()
}

// checkoutSummary captures what the event needs before state is reset
type checkoutSummary struct {
	mode        checkout.OrderMode
	total       decimal.Decimal
	itemCount   int
	tableNumber int
}

// buildRequest validates preconditions and assembles the submission shape
// for the current mode under the state lock
func (s *Service) buildRequest() (api.CheckoutRequest, checkoutSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, checkoutSummary{}, checkout.ErrEmptyCart
	}
	if s.mode == checkout.OrderModeTable && !s.assignment.IsReady() {
		return nil, checkoutSummary{}, checkout.ErrTableRequired
	}

	lines := s.cart.Lines()
	summary := checkoutSummary{
		mode:      s.mode,
		total:     s.cart.Total().Amount(),
		itemCount: len(lines),
	}

	if s.mode == checkout.OrderModeTable {
		items := make([]api.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, api.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		summary.tableNumber = s.assignment.TableNumber()
		return api.TableOrderRequest{
			TableNumber: s.assignment.TableNumber(),
			SeatNumber:  s.assignment.SeatNumber(),
			CustomerID:  s.assignment.CustomerID(),
			Items:       items,
		}, summary, nil
	}

	items := make([]api.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, api.SaleItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Amount(),
			Subtotal:  line.LineTotal.Amount(),
		})
	}
	return api.DirectSaleRequest{
		CustomerID:    s.saleCustomerID,
		Total:         summary.total,
		PaymentMethod: string(s.payment),
		Items:         items,
	}, summary, nil
}

// resetAfterSuccess returns the session to its initial composition state
func (s *Service) resetAfterSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.assignment.Reset()
	s.mode = checkout.OrderModeCounter
	s.payment = checkout.DefaultPaymentMethod
	s.saleCustomerID = nil
}

// statusLocked builds the read model; callers must hold the mutex
func (s *Service) statusLocked() StatusView {
	return StatusView{
		Mode:          s.mode,
		PaymentMethod: s.payment,
		Lines:         toLineViews(s.cart.Lines()),
		Total:         s.cart.Total().Amount(),
		TotalDisplay:  s.cart.Total().String(),
		ItemCount:     s.cart.Len(),
		Assignment:    toAssignmentView(s.assignment),
		InFlight:      s.inFlight.Load(),
	}
}
