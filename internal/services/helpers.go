package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

/* ---------- model → DTO mapping ---------- */

func propertySummary(p *models.Property) *dtos.PropertySummary {
	if p == nil {
		return nil
	}
	return &dtos.PropertySummary{
		ID:               p.ID,
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		MonthlyRentCents: p.MonthlyRentCents,
	}
}

func tenantSummary(t *models.Tenant) *dtos.TenantSummary {
	if t == nil {
		return nil
	}
	return &dtos.TenantSummary{
		ID:    t.ID,
		Name:  t.Name,
		Phone: t.Phone,
	}
}

func toPropertyResponse(p *models.Property, currentTenant *models.Tenant) *dtos.PropertyResponse {
	return &dtos.PropertyResponse{
		ID:               p.ID,
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		PropertyType:     string(p.PropertyType),
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		SquareFeet:       p.SquareFeet,
		MonthlyRentCents: p.MonthlyRentCents,
		Description:      p.Description,
		Status:           string(p.Status),
		CurrentTenant:    tenantSummary(currentTenant),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toTenantResponse(t *models.Tenant, stats *dtos.RentStats, current *models.Property) *dtos.TenantResponse {
	resp := &dtos.TenantResponse{
		ID:              t.ID,
		Name:            t.Name,
		Phone:           t.Phone,
		MoveInDate:      t.MoveInDate,
		Status:          string(t.Status),
		Notes:           t.Notes,
		RentStats:       stats,
		CurrentProperty: propertySummary(current),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.EmergencyContact != nil {
		resp.EmergencyContact = &dtos.EmergencyContactDTO{
			Name:         t.EmergencyContact.Name,
			Phone:        t.EmergencyContact.Phone,
			Relationship: t.EmergencyContact.Relationship,
		}
	}
	return resp
}

func toRentEntryResponse(e *models.RentEntry, p *models.Property, t *models.Tenant) *dtos.RentEntryResponse {
	return &dtos.RentEntryResponse{
		ID:              e.ID,
		PropertyID:      e.PropertyID,
		TenantID:        e.TenantID,
		Month:           e.Month,
		Year:            e.Year,
		RentAmountCents: e.RentAmountCents,
		DueDate:         e.DueDate,
		PaidDate:        e.PaidDate,
		PaidAmountCents: e.PaidAmountCents,
		Status:          string(e.Status),
		PaymentMethod:   string(e.PaymentMethod),
		Notes:           e.Notes,
		Property:        propertySummary(p),
		Tenant:          tenantSummary(t),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

/* ---------- related-record prefetch ---------- */

// fetchEntryRelations loads each distinct property and tenant referenced by
// the entries once, instead of per entry. A reference that fails to load is
// logged and left out of the response rather than failing the whole list.
func fetchEntryRelations(
	ctx context.Context,
	ownerID uuid.UUID,
	entries []*models.RentEntry,
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
) (map[uuid.UUID]*models.Property, map[uuid.UUID]*models.Tenant) {
	propMap := make(map[uuid.UUID]*models.Property)
	tenantMap := make(map[uuid.UUID]*models.Tenant)

	for _, e := range entries {
		if _, seen := propMap[e.PropertyID]; !seen {
			p, err := propRepo.GetByID(ctx, e.PropertyID, ownerID)
			if err != nil {
				utils.Logger.WithError(err).Warnf("Could not fetch property %s", e.PropertyID)
			}
			propMap[e.PropertyID] = p
		}
		if _, seen := tenantMap[e.TenantID]; !seen {
			t, err := tenantRepo.GetByID(ctx, e.TenantID, ownerID)
			if err != nil {
				utils.Logger.WithError(err).Warnf("Could not fetch tenant %s", e.TenantID)
			}
			tenantMap[e.TenantID] = t
		}
	}
	return propMap, tenantMap
}
