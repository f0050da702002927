package dtos

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyContactDTO struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// CreateTenantRequest is the payload for POST /api/v1/tenants.
type CreateTenantRequest struct {
	Name             string               `json:"name" validate:"required"`
	Phone            string               `json:"phone" validate:"required"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact,omitempty"`
	MoveInDate       *time.Time           `json:"move_in_date,omitempty"`
	Status           string               `json:"status" validate:"omitempty,oneof=active inactive pending"`
	Notes            string               `json:"notes,omitempty"`
}

type UpdateTenantRequest struct {
	Name             *string              `json:"name,omitempty"`
	Phone            *string              `json:"phone,omitempty"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact,omitempty"`
	MoveInDate       *time.Time           `json:"move_in_date,omitempty"`
	Status           *string              `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
	Notes            *string              `json:"notes,omitempty"`
}

// AssignPropertyRequest is the payload for POST /api/v1/tenants/{id}/assign-property.
// It is the tenant-initiated mirror of AssignTenantRequest and runs the same
// assignment path.
type AssignPropertyRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
}

// TenantSummary is the short form embedded in property and rent entry
// responses.
type TenantSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// TenantResponse is the full tenant record annotated with derived rent
// statistics and the property currently pointing at the tenant, if any.
type TenantResponse struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	Phone            string               `json:"phone"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact,omitempty"`
	MoveInDate       *time.Time           `json:"move_in_date,omitempty"`
	Status           string               `json:"status"`
	Notes            string               `json:"notes,omitempty"`
	RentStats        *RentStats           `json:"rent_stats,omitempty"`
	CurrentProperty  *PropertySummary     `json:"current_property,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// UnpaidBalanceDetails rides in the error body when a delete is blocked by
// outstanding rent.
type UnpaidBalanceDetails struct {
	UnpaidCount       int   `json:"unpaid_count"`
	UnpaidAmountCents int64 `json:"unpaid_amount_cents"`
}
