package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdv/terminal/internal/domain/catalog"
	"github.com/pdv/terminal/internal/domain/shared/valueobject"
	"github.com/pdv/terminal/internal/domain/tenant"
)

// GetProducts fetches the product catalog, optionally filtered by a search
// query
func (c *Client) GetProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}

	var dtos []productDTO
	if err := c.get(ctx, "/api/produtos/", values, &dtos); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, catalog.Product{
			ID:         dto.ID,
			Name:       dto.Name,
			Price:      valueobject.NewMoneyMZN(dto.Price),
			CategoryID: dto.CategoryID,
			Active:     dto.Active,
		})
	}
	return products, nil
}

// GetTables fetches the table list with occupancy status
func (c *Client) GetTables(ctx context.Context) ([]catalog.Table, error) {
	var dtos []tableDTO
	if err := c.get(ctx, "/api/mesas/", nil, &dtos); err != nil {
		return nil, err
	}

	tables := make([]catalog.Table, 0, len(dtos))
	for _, dto := range dtos {
		tables = append(tables, catalog.Table{
			Number:   dto.Number,
			Capacity: dto.Capacity,
			Status:   catalog.TableStatus(dto.Status),
		})
	}
	return tables, nil
}

// GetCategories fetches the category list
func (c *Client) GetCategories(ctx context.Context) ([]catalog.Category, error) {
	var dtos []categoryDTO
	if err := c.get(ctx, "/api/categorias/", nil, &dtos); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, catalog.Category{ID: dto.ID, Name: dto.Name})
	}
	return categories, nil
}

// SearchCustomers looks up customers for the seat assignment dialog
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]catalog.Customer, error) {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}

	var dtos []customerDTO
	if err := c.get(ctx, "/api/clientes/", values, &dtos); err != nil {
		return nil, err
	}

	customers := make([]catalog.Customer, 0, len(dtos))
	for _, dto := range dtos {
		customers = append(customers, catalog.Customer{ID: dto.ID, Name: dto.Name})
	}
	return customers, nil
}

// SubmitCheckout sends a composed checkout through the path selected by the
// request's concrete type
func (c *Client) SubmitCheckout(ctx context.Context, req CheckoutRequest) (*Receipt, error) {
	switch r := req.(type) {
	case TableOrderRequest:
		var resp orderCreatedResponse
		if err := c.post(ctx, "/api/pedidos/", r, &resp); err != nil {
			return nil, err
		}
		return &Receipt{
			Reference: resp.OrderUUID,
			Mode:      r.Mode(),
			Total:     resp.Total,
		}, nil
	case DirectSaleRequest:
		var resp saleCreatedResponse
		if err := c.post(ctx, "/api/vendas/", r, &resp); err != nil {
			return nil, err
		}
		return &Receipt{
			Reference: resp.ID,
			Mode:      r.Mode(),
			Total:     resp.Total,
		}, nil
	default:
		return nil, fmt.Errorf("api: unsupported checkout request type %T", req)
	}
}

// ListTenants fetches all establishments visible to the operator
func (c *Client) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	var dtos []tenantDTO
	if err := c.get(ctx, "/api/tenants/", nil, &dtos); err != nil {
		return nil, err
	}

	tenants := make([]tenant.Tenant, 0, len(dtos))
	for _, dto := range dtos {
		tenants = append(tenants, tenant.Tenant{
			ID:           dto.ID,
			Name:         dto.Name,
			BusinessKind: tenant.BusinessKind(dto.BusinessKind),
			Active:       dto.Active,
		})
	}
	return tenants, nil
}

// CreateTenant registers a new establishment
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*tenant.Tenant, error) {
	var dto tenantDTO
	if err := c.post(ctx, "/api/tenants/", req, &dto); err != nil {
		return nil, err
	}
	return &tenant.Tenant{
		ID:           dto.ID,
		Name:         dto.Name,
		BusinessKind: tenant.BusinessKind(dto.BusinessKind),
		Active:       dto.Active,
	}, nil
}

// UpdateTenant changes an establishment
func (c *Client) UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) error {
	return c.put(ctx, "/api/tenants/"+url.PathEscape(id), req, nil)
}

// DeactivateTenant removes (deactivates) an establishment
func (c *Client) DeactivateTenant(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/tenants/"+url.PathEscape(id))
}

// Login authenticates the operator with the OAuth2 password flow. The call
// itself carries no session token and no tenant header.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, nil, &resp, requestOptions{form: form})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
