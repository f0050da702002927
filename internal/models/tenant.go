package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantStatusType defines the possible states of a tenant record.
type TenantStatusType string

const (
	TenantStatusActive   TenantStatusType = "active"
	TenantStatusInactive TenantStatusType = "inactive"
	TenantStatusPending  TenantStatusType = "pending"
)

// EmergencyContact is stored flattened on the tenants row.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Tenant is a renter tracked by one landlord. MoveInDate anchors the
// rent schedule; it must be set before the tenant can be assigned to a
// property. A tenant is linked from at most one property via that
// property's current_tenant_id (no reverse pointer is stored).
type Tenant struct {
	Versioned
	ID               uuid.UUID         `json:"id"`
	OwnerID          uuid.UUID         `json:"owner_id"`
	Name             string            `json:"name"`
	Phone            string            `json:"phone"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	MoveInDate       *time.Time        `json:"move_in_date,omitempty"`
	Status           TenantStatusType  `json:"status"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (t *Tenant) GetID() string { return t.ID.String() }
