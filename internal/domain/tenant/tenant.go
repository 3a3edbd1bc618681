package tenant

// SentinelID is the reserved "no real tenant" identifier some backend
// deployments return before an establishment has been configured.
// Selecting it is treated the same as clearing the selection.
const SentinelID = "default"

// BusinessKind branches screen behavior between a grocery counter and a
// restaurant floor
type BusinessKind string

const (
	BusinessKindGrocery    BusinessKind = "mercearia"
	BusinessKindRestaurant BusinessKind = "restaurante"
)

// IsValid checks if the kind is a known business kind
func (k BusinessKind) IsValid() bool {
	return k == BusinessKindGrocery || k == BusinessKindRestaurant
}

// String returns the string representation of BusinessKind
func (k BusinessKind) String() string {
	return string(k)
}

// Tenant is a single business/establishment's isolated data scope within
// the shared backend
type Tenant struct {
	ID           string       `json:"id"`
	Name         string       `json:"nome"`
	BusinessKind BusinessKind `json:"tipo_negocio"`
	Active       bool         `json:"ativo"`
}

// IsRestaurant returns true for restaurant-mode tenants
func (t Tenant) IsRestaurant() bool {
	return t.BusinessKind == BusinessKindRestaurant
}

// Context is the active tenant identity threaded into every outgoing
// request. A zero Context means no tenant is selected.
type Context struct {
	TenantID     string       `json:"tenant_id"`
	BusinessKind BusinessKind `json:"business_kind"`
}

// IsZero returns true when no tenant is selected
func (c Context) IsZero() bool {
	return c.TenantID == ""
}
