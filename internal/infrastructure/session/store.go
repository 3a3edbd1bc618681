package session

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pdv/terminal/internal/domain/tenant"
)

// State is the durable client state carried by the terminal between
// sessions: the active tenant identity and the backend session token.
// The request gateway reads it on every call and never caches it.
type State struct {
	TenantID     string              `json:"tenant_id"`
	BusinessKind tenant.BusinessKind `json:"business_kind"`
	AccessToken  string              `json:"access_token"`
}

// TenantContext returns the tenant identity portion of the state
func (s State) TenantContext() tenant.Context {
	return tenant.Context{TenantID: s.TenantID, BusinessKind: s.BusinessKind}
}

// Store provides durable access to the terminal session state
type Store interface {
	// Load reads the current state. A missing record yields a zero State.
	Load(ctx context.Context) (State, error)
	// SetTenant persists the active tenant identity
	SetTenant(ctx context.Context, tenantID string, kind tenant.BusinessKind) error
	// ClearTenant removes the persisted tenant identity
	ClearTenant(ctx context.Context) error
	// SetToken persists the backend session token
	SetToken(ctx context.Context, token string) error
	// ClearToken removes the persisted session token
	ClearToken(ctx context.Context) error
}

// sessionRecord is the single-row GORM model backing the store
type sessionRecord struct {
	ID           uint   `gorm:"primaryKey"`
	TenantID     string `gorm:"column:tenant_id"`
	BusinessKind string `gorm:"column:business_kind"`
	AccessToken  string `gorm:"column:access_token"`
}

// TableName returns the table name for the session record
func (sessionRecord) TableName() string {
	return "session_state"
}

// recordID is the fixed primary key: the terminal holds exactly one session
const recordID = 1

// SQLiteStore persists session state in a local SQLite database
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the session database at the given path
// and migrates the schema
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the current state
func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	var rec sessionRecord
	err := s.db.WithContext(ctx).First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	return State{
		TenantID:     rec.TenantID,
		BusinessKind: tenant.BusinessKind(rec.BusinessKind),
		AccessToken:  rec.AccessToken,
	}, nil
}

// SetTenant persists the active tenant identity
func (s *SQLiteStore) SetTenant(ctx context.Context, tenantID string, kind tenant.BusinessKind) error {
	return s.update(ctx, map[string]interface{}{
		"tenant_id":     tenantID,
		"business_kind": string(kind),
	})
}

// ClearTenant removes the persisted tenant identity
func (s *SQLiteStore) ClearTenant(ctx context.Context) error {
	return s.update(ctx, map[string]interface{}{
		"tenant_id":     "",
		"business_kind": "",
	})
}

// SetToken persists the backend session token
func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	return s.update(ctx, map[string]interface{}{"access_token": token})
}

// ClearToken removes the persisted session token
func (s *SQLiteStore) ClearToken(ctx context.Context) error {
	return s.update(ctx, map[string]interface{}{"access_token": ""})
}

// update applies column changes to the single session row, creating it on
// first use
func (s *SQLiteStore) update(ctx context.Context, columns map[string]interface{}) error {
	db := s.db.WithContext(ctx)

	var rec sessionRecord
	err := db.First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = sessionRecord{ID: recordID}
		if err := db.Create(&rec).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return db.Model(&sessionRecord{ID: recordID}).Updates(columns).Error
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
