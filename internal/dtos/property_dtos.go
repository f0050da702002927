package dtos

import (
	"time"

	"github.com/google/uuid"
)

// CreatePropertyRequest is the payload for POST /api/v1/properties.
// Money is always cents.
type CreatePropertyRequest struct {
	Address          string  `json:"address" validate:"required"`
	City             string  `json:"city" validate:"required"`
	State            string  `json:"state" validate:"required"`
	ZipCode          string  `json:"zip_code" validate:"required"`
	PropertyType     string  `json:"property_type" validate:"omitempty,oneof=apartment house condo commercial other"`
	Bedrooms         int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms        float64 `json:"bathrooms" validate:"gte=0"`
	SquareFeet       *int    `json:"square_feet,omitempty" validate:"omitempty,gt=0"`
	MonthlyRentCents int64   `json:"monthly_rent_cents" validate:"gte=0"`
	Description      string  `json:"description,omitempty"`
	Status           string  `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// UpdatePropertyRequest carries only the fields the client wants changed.
type UpdatePropertyRequest struct {
	Address          *string  `json:"address,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	ZipCode          *string  `json:"zip_code,omitempty"`
	PropertyType     *string  `json:"property_type,omitempty" validate:"omitempty,oneof=apartment house condo commercial other"`
	Bedrooms         *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms        *float64 `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	SquareFeet       *int     `json:"square_feet,omitempty" validate:"omitempty,gt=0"`
	MonthlyRentCents *int64   `json:"monthly_rent_cents,omitempty" validate:"omitempty,gte=0"`
	Description      *string  `json:"description,omitempty"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}

// AssignTenantRequest is the payload for POST /api/v1/properties/{id}/assign-tenant.
type AssignTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
}

// PropertySummary is the short form embedded in tenant and rent entry
// responses.
type PropertySummary struct {
	ID               uuid.UUID `json:"id"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	MonthlyRentCents int64     `json:"monthly_rent_cents"`
}

// PropertyResponse is the full property record plus a summary of the
// current tenant when one is assigned.
type PropertyResponse struct {
	ID               uuid.UUID      `json:"id"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	State            string         `json:"state"`
	ZipCode          string         `json:"zip_code"`
	PropertyType     string         `json:"property_type"`
	Bedrooms         int            `json:"bedrooms"`
	Bathrooms        float64        `json:"bathrooms"`
	SquareFeet       *int           `json:"square_feet,omitempty"`
	MonthlyRentCents int64          `json:"monthly_rent_cents"`
	Description      string         `json:"description,omitempty"`
	Status           string         `json:"status"`
	CurrentTenant    *TenantSummary `json:"current_tenant,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// AssignTenantResponse reports the updated property and how many rent
// entries the assignment generated.
type AssignTenantResponse struct {
	Message          string            `json:"message"`
	Property         *PropertyResponse `json:"property"`
	EntriesGenerated int64             `json:"entries_generated"`
}
