package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

type PropertyService interface {
	ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*dtos.PropertyResponse, error)
	GetProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (*dtos.PropertyResponse, error)
	CreateProperty(ctx context.Context, ownerID uuid.UUID, req *dtos.CreatePropertyRequest) (*dtos.PropertyResponse, error)
	UpdateProperty(ctx context.Context, ownerID, propertyID uuid.UUID, req *dtos.UpdatePropertyRequest) (*dtos.PropertyResponse, error)
	DeleteProperty(ctx context.Context, ownerID, propertyID uuid.UUID) error
}

type propertyService struct {
	propRepo   repositories.PropertyRepository
	tenantRepo repositories.TenantRepository
	entryRepo  repositories.RentEntryRepository
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	entryRepo repositories.RentEntryRepository,
) PropertyService {
	return &propertyService{
		propRepo:   propRepo,
		tenantRepo: tenantRepo,
		entryRepo:  entryRepo,
	}
}

/* ---------- reads ---------- */

func (s *propertyService) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*dtos.PropertyResponse, error) {
	properties, err := s.propRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not list properties", err)
	}

	out := make([]*dtos.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, toPropertyResponse(p, s.currentTenant(ctx, ownerID, p)))
	}
	return out, nil
}

func (s *propertyService) GetProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (*dtos.PropertyResponse, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load property", err)
	}
	if property == nil {
		return nil, utils.NotFoundError("Property not found")
	}
	return toPropertyResponse(property, s.currentTenant(ctx, ownerID, property)), nil
}

/* ---------- writes ---------- */

func (s *propertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, req *dtos.CreatePropertyRequest) (*dtos.PropertyResponse, error) {
	propertyType := models.PropertyTypeApartment
	if req.PropertyType != "" {
		propertyType = models.PropertyType(req.PropertyType)
	}
	status := models.PropertyStatusAvailable
	if req.Status != "" {
		status = models.PropertyStatusType(req.Status)
	}

	bedrooms := req.Bedrooms
	if bedrooms == 0 {
		bedrooms = 1
	}
	bathrooms := req.Bathrooms
	if bathrooms == 0 {
		bathrooms = 1
	}

	property := &models.Property{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		PropertyType:     propertyType,
		Bedrooms:         bedrooms,
		Bathrooms:        bathrooms,
		SquareFeet:       req.SquareFeet,
		MonthlyRentCents: req.MonthlyRentCents,
		Description:      req.Description,
		Status:           status,
	}

	if err := s.propRepo.Create(ctx, property); err != nil {
		return nil, utils.InternalError("Could not create property", err)
	}
	return toPropertyResponse(property, nil), nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, ownerID, propertyID uuid.UUID, req *dtos.UpdatePropertyRequest) (*dtos.PropertyResponse, error) {
	var updated *models.Property
	err := s.propRepo.UpdateWithRetry(ctx, propertyID, ownerID, func(p *models.Property) error {
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.City != nil {
			p.City = *req.City
		}
		if req.State != nil {
			p.State = *req.State
		}
		if req.ZipCode != nil {
			p.ZipCode = *req.ZipCode
		}
		if req.PropertyType != nil {
			p.PropertyType = models.PropertyType(*req.PropertyType)
		}
		if req.Bedrooms != nil {
			p.Bedrooms = *req.Bedrooms
		}
		if req.Bathrooms != nil {
			p.Bathrooms = *req.Bathrooms
		}
		if req.SquareFeet != nil {
			p.SquareFeet = req.SquareFeet
		}
		if req.MonthlyRentCents != nil {
			p.MonthlyRentCents = *req.MonthlyRentCents
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Status != nil {
			p.Status = models.PropertyStatusType(*req.Status)
		}
		updated = p
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, utils.InternalError("Could not update property", err)
	}

	return toPropertyResponse(updated, s.currentTenant(ctx, ownerID, updated)), nil
}

// DeleteProperty mirrors the tenant deletion guard: a property cannot be
// removed while unpaid rent entries still reference it.
func (s *propertyService) DeleteProperty(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	unpaid, err := s.entryRepo.ListUnpaidByPropertyID(ctx, propertyID, ownerID)
	if err != nil {
		return utils.InternalError("Could not check outstanding rent", err)
	}
	if len(unpaid) > 0 {
		var totalCents int64
		for _, e := range unpaid {
			totalCents += e.OutstandingCents()
		}
		return utils.PreconditionErrorWithDetails(
			fmt.Sprintf("Cannot delete property with unpaid rent. %d unpaid entries totaling $%.2f",
				len(unpaid), float64(totalCents)/100),
			&dtos.UnpaidBalanceDetails{
				UnpaidCount:       len(unpaid),
				UnpaidAmountCents: totalCents,
			},
		)
	}

	if err := s.propRepo.Delete(ctx, propertyID, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Property not found")
		}
		return utils.InternalError("Could not delete property", err)
	}
	return nil
}

/* ---------- internals ---------- */

func (s *propertyService) currentTenant(ctx context.Context, ownerID uuid.UUID, p *models.Property) *models.Tenant {
	if p.CurrentTenantID == nil {
		return nil
	}
	tenant, err := s.tenantRepo.GetByID(ctx, *p.CurrentTenantID, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not fetch tenant %s", *p.CurrentTenantID)
		return nil
	}
	return tenant
}
