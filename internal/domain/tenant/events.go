package tenant

import "github.com/pdv/terminal/internal/domain/shared"

// Event types raised by the tenant context
const (
	EventTypeTenantChanged = "tenant.changed"
)

// ChangedEvent is broadcast whenever the active tenant switches. Dependent
// screens listen for it and discard their volatile state; an empty TenantID
// means the selection was cleared.
type ChangedEvent struct {
	shared.BaseDomainEvent
	BusinessKind BusinessKind `json:"business_kind"`
}

// NewChangedEvent creates a tenant changed event. tenantID may be empty
// when the selection was cleared.
func NewChangedEvent(tenantID string, kind BusinessKind) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantChanged, tenantID),
		BusinessKind:    kind,
	}
}
