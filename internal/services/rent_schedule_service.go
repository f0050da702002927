package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

// Rent is due on the 5th of each billing month.
const rentDueDay = 5

/*
RentScheduleService owns the calendar loop that back-fills monthly rent
entries from a tenant's move-in month through the current month, inclusive.
Months beyond the current one are never generated.

Generation is idempotent: months already covered are skipped (the period
unique index makes the skip hold even for concurrent runs), so the same
pair can be regenerated freely, e.g. after a move-in date correction.
*/
type RentScheduleService interface {
	BuildSchedule(ownerID uuid.UUID, tenant *models.Tenant, property *models.Property) []*models.RentEntry
	Generate(ctx context.Context, ownerID, tenantID, propertyID uuid.UUID) (int64, error)
}

type rentScheduleService struct {
	tenantRepo repositories.TenantRepository
	propRepo   repositories.PropertyRepository
	entryRepo  repositories.RentEntryRepository
	now        func() time.Time
}

func NewRentScheduleService(
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
	entryRepo repositories.RentEntryRepository,
	now func() time.Time,
) RentScheduleService {
	return &rentScheduleService{
		tenantRepo: tenantRepo,
		propRepo:   propRepo,
		entryRepo:  entryRepo,
		now:        now,
	}
}

// BuildSchedule enumerates every billing period from the tenant's move-in
// month through the current month and constructs a candidate entry for each.
// The rent amount is snapshotted from the property's current monthly rent;
// an entry whose due date is already behind us starts out overdue.
// The caller guarantees tenant.MoveInDate is set.
func (s *rentScheduleService) BuildSchedule(
	ownerID uuid.UUID,
	tenant *models.Tenant,
	property *models.Property,
) []*models.RentEntry {
	now := s.now()
	year, month := tenant.MoveInDate.Year(), int(tenant.MoveInDate.Month())
	endYear, endMonth := now.Year(), int(now.Month())

	var entries []*models.RentEntry
	for year < endYear || (year == endYear && month <= endMonth) {
		dueDate := time.Date(year, time.Month(month), rentDueDay, 0, 0, 0, 0, time.UTC)

		status := models.RentStatusPending
		if dueDate.Before(now) {
			status = models.RentStatusOverdue
		}

		entries = append(entries, &models.RentEntry{
			ID:              uuid.New(),
			OwnerID:         ownerID,
			PropertyID:      property.ID,
			TenantID:        tenant.ID,
			Month:           month,
			Year:            year,
			RentAmountCents: property.MonthlyRentCents,
			DueDate:         dueDate,
			Status:          status,
			PaymentMethod:   models.PaymentMethodOther,
		})

		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return entries
}

// Generate builds the schedule for the pair and persists the missing months
// as one batch. Returns the number of entries actually created.
func (s *rentScheduleService) Generate(ctx context.Context, ownerID, tenantID, propertyID uuid.UUID) (int64, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID, ownerID)
	if err != nil {
		return 0, utils.InternalError("Could not load tenant", err)
	}
	if tenant == nil {
		return 0, utils.NotFoundError("Tenant not found")
	}

	property, err := s.propRepo.GetByID(ctx, propertyID, ownerID)
	if err != nil {
		return 0, utils.InternalError("Could not load property", err)
	}
	if property == nil {
		return 0, utils.NotFoundError("Property not found")
	}

	if tenant.MoveInDate == nil {
		return 0, utils.PreconditionError("Tenant must have a move-in date before rent entries can be generated")
	}

	entries := s.BuildSchedule(ownerID, tenant, property)
	created, err := s.entryRepo.CreateMany(ctx, entries)
	if err != nil {
		return 0, utils.InternalError("Could not create rent entries", err)
	}
	return created, nil
}
