package tenant

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdv/terminal/internal/domain/shared"
	"github.com/pdv/terminal/internal/domain/tenant"
	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/infrastructure/session"
)

// Gateway is the outbound port for tenant management calls
type Gateway interface {
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	CreateTenant(ctx context.Context, req api.CreateTenantRequest) (*tenant.Tenant, error)
	UpdateTenant(ctx context.Context, id string, req api.UpdateTenantRequest) error
	DeactivateTenant(ctx context.Context, id string) error
}

// Service owns the active tenant identity: it persists switches and
// broadcasts them so dependent screens can discard their volatile state
type Service struct {
	gateway   Gateway
	sessions  session.Store
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a tenant context service
func NewService(gateway Gateway, sessions session.Store, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		gateway:   gateway,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

// Current returns the active tenant context. A zero context means no
// tenant is selected.
func (s *Service) Current(ctx context.Context) (tenant.Context, error) {
	state, err := s.sessions.Load(ctx)
	if err != nil {
		return tenant.Context{}, err
	}
	return state.TenantContext(), nil
}

// Switch changes the active tenant. An empty id or the reserved sentinel
// clears the selection instead; either way a change notification is
// broadcast so every dependent screen resets. Requests issued after Switch
// returns carry the new tenant, never the old one. A real switch always
// persists the business kind alongside the id, so the kind is required.
func (s *Service) Switch(ctx context.Context, tenantID string, kind tenant.BusinessKind) error {
	if tenantID == "" || tenantID == tenant.SentinelID {
		return s.clear(ctx)
	}
	if kind == "" {
		return shared.NewDomainError("BUSINESS_KIND_REQUIRED", "Business kind is required when selecting a tenant")
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_BUSINESS_KIND", "Unknown business kind")
	}

	if err := s.sessions.SetTenant(ctx, tenantID, kind); err != nil {
		return err
	}

	s.broadcast(ctx, tenantID, kind)
	s.logger.Info("tenant switched",
		zap.String("tenant_id", tenantID),
		zap.String("business_kind", kind.String()),
	)
	return nil
}

// clear removes the persisted tenant and broadcasts an empty identity
func (s *Service) clear(ctx context.Context) error {
	if err := s.sessions.ClearTenant(ctx); err != nil {
		return err
	}
	s.broadcast(ctx, "", "")
	s.logger.Info("tenant selection cleared")
	return nil
}

// broadcast publishes the tenant change on the event bus
func (s *Service) broadcast(ctx context.Context, tenantID string, kind tenant.BusinessKind) {
	event := tenant.NewChangedEvent(tenantID, kind)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish tenant changed event", zap.Error(err))
	}
}

// List fetches all establishments visible to the operator
func (s *Service) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.gateway.ListTenants(ctx)
}

// Create registers a new establishment
func (s *Service) Create(ctx context.Context, req api.CreateTenantRequest) (*tenant.Tenant, error) {
	return s.gateway.CreateTenant(ctx, req)
}

// Update changes an establishment's name, kind or active flag
func (s *Service) Update(ctx context.Context, id string, req api.UpdateTenantRequest) error {
	return s.gateway.UpdateTenant(ctx, id, req)
}

// Deactivate removes an establishment. When it is the active tenant the
// selection is cleared as well.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.gateway.DeactivateTenant(ctx, id); err != nil {
		return err
	}

	state, err := s.sessions.Load(ctx)
	if err == nil && state.TenantID == id {
		return s.clear(ctx)
	}
	return nil
}
