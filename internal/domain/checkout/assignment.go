package checkout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pdv/terminal/internal/domain/shared"
)

// AssignmentState tracks how far the operator has progressed in binding
// the order to a table
type AssignmentState string

const (
	AssignmentNoTable     AssignmentState = "NO_TABLE"
	AssignmentTableChosen AssignmentState = "TABLE_CHOSEN"
	AssignmentSeatChosen  AssignmentState = "SEAT_CHOSEN"
	AssignmentReady       AssignmentState = "READY"
)

// String returns the string representation of AssignmentState
func (s AssignmentState) String() string {
	return string(s)
}

// TableAssignment binds the order being composed to a table and, for tables
// seating two or more, to a numbered seat with its own customer. Seat and
// customer are paired: picking a different seat discards the customer chosen
// for the previous one.
//
// State machine: NoTable → TableChosen → SeatChosen → Ready. Tables with
// capacity below two skip the seat/customer steps and become Ready as soon
// as the table is chosen.
type TableAssignment struct {
	state        AssignmentState
	tableNumber  int
	capacity     int
	seatNumber   int
	customerID   *uuid.UUID
	customerName string
}

// NewTableAssignment creates an assignment with no table chosen
func NewTableAssignment() *TableAssignment {
	return &TableAssignment{state: AssignmentNoTable}
}

// ChooseTable captures the table and its declared capacity. Any previously
// chosen seat or customer is discarded.
func (a *TableAssignment) ChooseTable(tableNumber, capacity int) error {
	if tableNumber <= 0 {
		return shared.NewDomainError("INVALID_TABLE", "Table number must be positive")
	}
	if capacity <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be positive")
	}

	a.tableNumber = tableNumber
	a.capacity = capacity
	a.seatNumber = 0
	a.customerID = nil
	a.customerName = ""

	if capacity < 2 {
		// Single-seat tables need no seat or customer
		a.state = AssignmentReady
	} else {
		a.state = AssignmentTableChosen
	}
	return nil
}

// SetSeat records the seat number for the current table. Changing the seat
// clears any previously chosen customer, since a customer belongs to exactly
// one seat within the order.
func (a *TableAssignment) SetSeat(seatNumber int) error {
	if a.state == AssignmentNoTable {
		return shared.NewDomainError("NO_TABLE", "Choose a table before picking a seat")
	}
	if seatNumber < 1 || seatNumber > a.capacity {
		return shared.NewDomainError("INVALID_SEAT",
			fmt.Sprintf("Seat number must be between 1 and %d", a.capacity))
	}

	a.seatNumber = seatNumber
	a.customerID = nil
	a.customerName = ""
	if a.capacity >= 2 {
		a.state = AssignmentSeatChosen
	}
	return nil
}

// SetCustomer binds a customer to the currently chosen seat, completing the
// assignment for multi-seat tables
func (a *TableAssignment) SetCustomer(customerID uuid.UUID, customerName string) error {
	if a.state == AssignmentNoTable {
		return shared.NewDomainError("NO_TABLE", "Choose a table before picking a customer")
	}
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if a.capacity >= 2 && a.seatNumber == 0 {
		return shared.NewDomainError("NO_SEAT", "Choose a seat before picking a customer")
	}

	a.customerID = &customerID
	a.customerName = customerName
	a.state = AssignmentReady
	return nil
}

// Reset discards the entire assignment, returning to NoTable. Called on
// checkout success and when the order mode leaves Table.
func (a *TableAssignment) Reset() {
	*a = TableAssignment{state: AssignmentNoTable}
}

// State returns the current assignment state
func (a *TableAssignment) State() AssignmentState {
	return a.state
}

// IsReady returns true when the assignment is complete enough for checkout
func (a *TableAssignment) IsReady() bool {
	return a.state == AssignmentReady
}

// TableNumber returns the chosen table number, zero if none
func (a *TableAssignment) TableNumber() int {
	return a.tableNumber
}

// Capacity returns the declared capacity of the chosen table
func (a *TableAssignment) Capacity() int {
	return a.capacity
}

// SeatNumber returns the chosen seat, zero if none
func (a *TableAssignment) SeatNumber() int {
	return a.seatNumber
}

// CustomerID returns the chosen customer, nil if none
func (a *TableAssignment) CustomerID() *uuid.UUID {
	return a.customerID
}

// CustomerName returns the chosen customer's display name
func (a *TableAssignment) CustomerName() string {
	return a.customerName
}
