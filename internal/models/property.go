package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyType classifies a rental property.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeOther      PropertyType = "other"
)

// PropertyStatusType defines the possible occupancy states of a property.
type PropertyStatusType string

const (
	PropertyStatusAvailable   PropertyStatusType = "available"
	PropertyStatusOccupied    PropertyStatusType = "occupied"
	PropertyStatusMaintenance PropertyStatusType = "maintenance"
)

// Property is a rental unit tracked by one landlord (the owner).
// Status and CurrentTenantID move together: a property is occupied
// exactly when a current tenant is set. The assignment repository is
// the only writer of that pair.
type Property struct {
	Versioned
	ID               uuid.UUID          `json:"id"`
	OwnerID          uuid.UUID          `json:"owner_id"`
	Address          string             `json:"address"`
	City             string             `json:"city"`
	State            string             `json:"state"`
	ZipCode          string             `json:"zip_code"`
	PropertyType     PropertyType       `json:"property_type"`
	Bedrooms         int                `json:"bedrooms"`
	Bathrooms        float64            `json:"bathrooms"`
	SquareFeet       *int               `json:"square_feet,omitempty"`
	MonthlyRentCents int64              `json:"monthly_rent_cents"`
	Description      string             `json:"description,omitempty"`
	Status           PropertyStatusType `json:"status"`
	CurrentTenantID  *uuid.UUID         `json:"current_tenant_id,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (p *Property) GetID() string { return p.ID.String() }
