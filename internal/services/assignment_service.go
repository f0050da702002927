package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

/*
AssignmentService expresses "this tenant now occupies this property".
Both the property-initiated endpoint (assign-tenant) and the
tenant-initiated one (assign-property) land here, so the two paths cannot
drift apart. The property update and the schedule insert happen in one
transaction via the assignment repository.
*/
type AssignmentService interface {
	AssignTenantToProperty(ctx context.Context, ownerID, propertyID, tenantID uuid.UUID) (*dtos.AssignTenantResponse, error)
}

type assignmentService struct {
	propRepo   repositories.PropertyRepository
	tenantRepo repositories.TenantRepository
	assignRepo repositories.AssignmentRepository
	schedule   RentScheduleService
}

func NewAssignmentService(
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	assignRepo repositories.AssignmentRepository,
	schedule RentScheduleService,
) AssignmentService {
	return &assignmentService{
		propRepo:   propRepo,
		tenantRepo: tenantRepo,
		assignRepo: assignRepo,
		schedule:   schedule,
	}
}

func (s *assignmentService) AssignTenantToProperty(
	ctx context.Context,
	ownerID, propertyID, tenantID uuid.UUID,
) (*dtos.AssignTenantResponse, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load property", err)
	}
	if property == nil {
		return nil, utils.NotFoundError("Property not found")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load tenant", err)
	}
	if tenant == nil {
		return nil, utils.NotFoundError("Tenant not found")
	}

	if tenant.MoveInDate == nil {
		return nil, utils.PreconditionError("Tenant must have a move-in date before being assigned to a property")
	}

	entries := s.schedule.BuildSchedule(ownerID, tenant, property)

	created, err := s.assignRepo.AssignTenant(ctx, propertyID, tenantID, ownerID, entries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, utils.InternalError("Could not assign tenant", err)
	}

	// Reflect the committed state on the in-memory copy for the response.
	property.CurrentTenantID = &tenant.ID
	property.Status = models.PropertyStatusOccupied

	return &dtos.AssignTenantResponse{
		Message:          "Tenant assigned successfully",
		Property:         toPropertyResponse(property, tenant),
		EntriesGenerated: created,
	}, nil
}
