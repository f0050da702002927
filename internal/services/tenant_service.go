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

type TenantService interface {
	ListTenants(ctx context.Context, ownerID uuid.UUID) ([]*dtos.TenantResponse, error)
	GetTenant(ctx context.Context, ownerID, tenantID uuid.UUID) (*dtos.TenantResponse, error)
	CreateTenant(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateTenantRequest) (*dtos.TenantResponse, error)
	UpdateTenant(ctx context.Context, ownerID, tenantID uuid.UUID, req *dtos.UpdateTenantRequest) (*dtos.TenantResponse, error)
	DeleteTenant(ctx context.Context, ownerID, tenantID uuid.UUID) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	propRepo   repositories.PropertyRepository
	entryRepo  repositories.RentEntryRepository
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
	entryRepo repositories.RentEntryRepository,
) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		propRepo:   propRepo,
		entryRepo:  entryRepo,
	}
}

/* ---------- reads ---------- */

// ListTenants returns every tenant annotated with derived rent statistics
// and the property currently pointing at them (there is no reverse pointer
// on the tenant row; the link is found by query).
func (s *tenantService) ListTenants(ctx context.Context, ownerID uuid.UUID) ([]*dtos.TenantResponse, error) {
	tenants, err := s.tenantRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not list tenants", err)
	}

	out := make([]*dtos.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		resp, err := s.annotate(ctx, ownerID, t)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *tenantService) GetTenant(ctx context.Context, ownerID, tenantID uuid.UUID) (*dtos.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load tenant", err)
	}
	if tenant == nil {
		return nil, utils.NotFoundError("Tenant not found")
	}
	return s.annotate(ctx, ownerID, tenant)
}

/* ---------- writes ---------- */

func (s *tenantService) CreateTenant(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateTenantRequest) (*dtos.TenantResponse, error) {
	status := models.TenantStatusActive
	if req.Status != "" {
		status = models.TenantStatusType(req.Status)
	}

	tenant := &models.Tenant{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Phone:      req.Phone,
		MoveInDate: req.MoveInDate,
		Status:     status,
		Notes:      req.Notes,
	}
	if req.EmergencyContact != nil {
		tenant.EmergencyContact = &models.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		}
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, utils.InternalError("Could not create tenant", err)
	}
	return toTenantResponse(tenant, nil, nil), nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, ownerID, tenantID uuid.UUID, req *dtos.UpdateTenantRequest) (*dtos.TenantResponse, error) {
	var updated *models.Tenant
	err := s.tenantRepo.UpdateWithRetry(ctx, tenantID, ownerID, func(t *models.Tenant) error {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Phone != nil {
			t.Phone = *req.Phone
		}
		if req.EmergencyContact != nil {
			t.EmergencyContact = &models.EmergencyContact{
				Name:         req.EmergencyContact.Name,
				Phone:        req.EmergencyContact.Phone,
				Relationship: req.EmergencyContact.Relationship,
			}
		}
		if req.MoveInDate != nil {
			t.MoveInDate = req.MoveInDate
		}
		if req.Status != nil {
			t.Status = models.TenantStatusType(*req.Status)
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		updated = t
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Tenant not found")
		}
		return nil, utils.InternalError("Could not update tenant", err)
	}

	return s.annotate(ctx, ownerID, updated)
}

// DeleteTenant removes a tenant unless unpaid rent entries (pending,
// overdue, or partial) still reference them; the rejection reports how many
// entries and how much money are outstanding.
func (s *tenantService) DeleteTenant(ctx context.Context, ownerID, tenantID uuid.UUID) error {
	unpaid, err := s.entryRepo.ListUnpaidByTenantID(ctx, tenantID, ownerID)
	if err != nil {
		return utils.InternalError("Could not check outstanding rent", err)
	}
	if len(unpaid) > 0 {
		var totalCents int64
		for _, e := range unpaid {
			totalCents += e.OutstandingCents()
		}
		return utils.PreconditionErrorWithDetails(
			fmt.Sprintf("Cannot delete tenant with unpaid rent. %d unpaid entries totaling $%.2f",
				len(unpaid), float64(totalCents)/100),
			&dtos.UnpaidBalanceDetails{
				UnpaidCount:       len(unpaid),
				UnpaidAmountCents: totalCents,
			},
		)
	}

	if err := s.tenantRepo.Delete(ctx, tenantID, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Tenant not found")
		}
		return utils.InternalError("Could not delete tenant", err)
	}
	return nil
}

/* ---------- internals ---------- */

func (s *tenantService) annotate(ctx context.Context, ownerID uuid.UUID, t *models.Tenant) (*dtos.TenantResponse, error) {
	entries, err := s.entryRepo.ListByTenantID(ctx, t.ID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load rent entries", err)
	}

	property, err := s.propRepo.FindByCurrentTenant(ctx, t.ID, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not fetch current property for tenant %s", t.ID)
	}

	return toTenantResponse(t, ComputeRentStats(entries), property), nil
}
