package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

// Fixed IDs so repeated startups recognize existing seed data.
var (
	seedOwnerID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedPropertyID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedTenantID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

// SeedTestData inserts a demo landlord portfolio for local development: one
// occupied property, its tenant, and the rent schedule from the tenant's
// move-in date. Skips itself when the sentinel property already exists.
func SeedTestData(
	ctx context.Context,
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	assignRepo repositories.AssignmentRepository,
	buildSchedule func(ownerID uuid.UUID, tenant *models.Tenant, property *models.Property) []*models.RentEntry,
) error {
	if existing, err := propRepo.GetByID(ctx, seedPropertyID, seedOwnerID); err != nil {
		return fmt.Errorf("check existing seed property: %w", err)
	} else if existing != nil {
		utils.Logger.Info("rent-service: seed data already present; skipping seeding")
		return nil
	}

	sqft := 950
	property := &models.Property{
		ID:               seedPropertyID,
		OwnerID:          seedOwnerID,
		Address:          "742 Evergreen Terrace",
		City:             "Springfield",
		State:            "IL",
		ZipCode:          "62704",
		PropertyType:     models.PropertyTypeHouse,
		Bedrooms:         3,
		Bathrooms:        1.5,
		SquareFeet:       &sqft,
		MonthlyRentCents: 145000,
		Description:      "Single-family house with detached garage",
		Status:           models.PropertyStatusAvailable,
	}
	if err := propRepo.Create(ctx, property); err != nil {
		return fmt.Errorf("seed property: %w", err)
	}

	moveIn := time.Now().UTC().AddDate(0, -3, 0)
	tenant := &models.Tenant{
		ID:         seedTenantID,
		OwnerID:    seedOwnerID,
		Name:       "Alex Morgan",
		Phone:      "+15551234567",
		MoveInDate: &moveIn,
		Status:     models.TenantStatusActive,
		EmergencyContact: &models.EmergencyContact{
			Name:         "Jamie Morgan",
			Phone:        "+15557654321",
			Relationship: "sibling",
		},
	}
	if err := tenantRepo.Create(ctx, tenant); err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}

	entries := buildSchedule(seedOwnerID, tenant, property)
	created, err := assignRepo.AssignTenant(ctx, property.ID, tenant.ID, seedOwnerID, entries)
	if err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	utils.Logger.Infof("rent-service: seeded demo data (%d rent entries)", created)
	return nil
}
