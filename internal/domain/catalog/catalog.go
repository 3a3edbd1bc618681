package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/pdv/terminal/internal/domain/shared/valueobject"
)

// Product is a sellable catalog entry as served by the backend
type Product struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"nome"`
	Price      valueobject.Money `json:"preco"`
	CategoryID *uuid.UUID        `json:"categoria_id,omitempty"`
	Active     bool              `json:"ativo"`
}

// Category groups products on the selection grid
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
}

// TableStatus is the backend-reported occupancy of a physical table
type TableStatus string

const (
	TableStatusFree     TableStatus = "livre"
	TableStatusOccupied TableStatus = "ocupada"
	TableStatusReserved TableStatus = "reservada"
)

// Table is a physical table with its declared seating capacity
type Table struct {
	Number   int         `json:"numero"`
	Capacity int         `json:"capacidade"`
	Status   TableStatus `json:"status"`
}

// Customer is a known client that can be bound to a seat
type Customer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
}

// Snapshot is a wholesale view of the catalog and table occupancy at one
// point in time. Refreshes replace the snapshot entirely; there is no
// incremental merge.
type Snapshot struct {
	Products   []Product  `json:"products"`
	Tables     []Table    `json:"tables"`
	Categories []Category `json:"categories"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

// ProductByID returns the product with the given id, or nil
func (s *Snapshot) ProductByID(id uuid.UUID) *Product {
	for idx := range s.Products {
		if s.Products[idx].ID == id {
			return &s.Products[idx]
		}
	}
	return nil
}

// TableByNumber returns the table with the given number, or nil
func (s *Snapshot) TableByNumber(number int) *Table {
	for idx := range s.Tables {
		if s.Tables[idx].Number == number {
			return &s.Tables[idx]
		}
	}
	return nil
}

// IsEmpty returns true when the snapshot has never been populated
func (s Snapshot) IsEmpty() bool {
	return s.FetchedAt.IsZero()
}
