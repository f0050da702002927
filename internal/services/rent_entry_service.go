package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/utils"
)

const pgUniqueViolation = "23505"

type RentEntryService interface {
	ListEntries(ctx context.Context, ownerID uuid.UUID) ([]*dtos.RentEntryResponse, error)
	GetEntry(ctx context.Context, ownerID, entryID uuid.UUID) (*dtos.RentEntryResponse, error)
	CreateManualEntry(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateRentEntryRequest) (*dtos.RentEntryResponse, error)
	UpdateEntry(ctx context.Context, ownerID, entryID uuid.UUID, req *dtos.UpdateRentEntryRequest) (*dtos.RentEntryResponse, error)
	MarkPaid(ctx context.Context, ownerID, entryID uuid.UUID, req *dtos.MarkPaidRequest) (*dtos.RentEntryResponse, error)
	DeleteEntry(ctx context.Context, ownerID, entryID uuid.UUID) error
	Statistics(ctx context.Context, ownerID uuid.UUID) (*dtos.RentStats, error)
	Regenerate(ctx context.Context, ownerID, tenantID, propertyID uuid.UUID) (*dtos.GenerateEntriesResponse, error)
}

type rentEntryService struct {
	entryRepo  repositories.RentEntryRepository
	propRepo   repositories.PropertyRepository
	tenantRepo repositories.TenantRepository
	schedule   RentScheduleService
	now        func() time.Time
}

func NewRentEntryService(
	entryRepo repositories.RentEntryRepository,
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	schedule RentScheduleService,
	now func() time.Time,
) RentEntryService {
	return &rentEntryService{
		entryRepo:  entryRepo,
		propRepo:   propRepo,
		tenantRepo: tenantRepo,
		schedule:   schedule,
		now:        now,
	}
}

/* ---------- reads ---------- */

func (s *rentEntryService) ListEntries(ctx context.Context, ownerID uuid.UUID) ([]*dtos.RentEntryResponse, error) {
	entries, err := s.entryRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not list rent entries", err)
	}

	propMap, tenantMap := fetchEntryRelations(ctx, ownerID, entries, s.propRepo, s.tenantRepo)

	out := make([]*dtos.RentEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRentEntryResponse(e, propMap[e.PropertyID], tenantMap[e.TenantID]))
	}
	return out, nil
}

func (s *rentEntryService) GetEntry(ctx context.Context, ownerID, entryID uuid.UUID) (*dtos.RentEntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load rent entry", err)
	}
	if entry == nil {
		return nil, utils.NotFoundError("Rent entry not found")
	}
	return s.populated(ctx, ownerID, entry), nil
}

/* ---------- manual create ---------- */

func (s *rentEntryService) CreateManualEntry(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateRentEntryRequest) (*dtos.RentEntryResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load tenant", err)
	}
	if tenant == nil {
		return nil, utils.NotFoundError("Tenant not found")
	}

	property, err := s.propRepo.GetByID(ctx, req.PropertyID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load property", err)
	}
	if property == nil {
		return nil, utils.NotFoundError("Property not found")
	}

	now := s.now()

	dueDate := time.Date(req.Year, time.Month(req.Month), rentDueDay, 0, 0, 0, 0, time.UTC)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	status := models.RentStatusPending
	if dueDate.Before(now) {
		status = models.RentStatusOverdue
	}
	if req.Status != "" {
		status = models.RentStatusType(req.Status)
	}

	method := models.PaymentMethodOther
	if req.PaymentMethod != "" {
		method = models.PaymentMethodType(req.PaymentMethod)
	}

	entry := &models.RentEntry{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		Month:           req.Month,
		Year:            req.Year,
		RentAmountCents: req.RentAmountCents,
		DueDate:         dueDate,
		PaidAmountCents: req.PaidAmountCents,
		Status:          status,
		PaymentMethod:   method,
		Notes:           req.Notes,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, utils.ConflictError("A rent entry already exists for this tenant, property, and billing period")
		}
		return nil, utils.InternalError("Could not create rent entry", err)
	}

	return toRentEntryResponse(entry, property, tenant), nil
}

/* ---------- updates ---------- */

func (s *rentEntryService) UpdateEntry(ctx context.Context, ownerID, entryID uuid.UUID, req *dtos.UpdateRentEntryRequest) (*dtos.RentEntryResponse, error) {
	var updated *models.RentEntry
	err := s.entryRepo.UpdateWithRetry(ctx, entryID, ownerID, func(e *models.RentEntry) error {
		if req.Month != nil {
			e.Month = *req.Month
		}
		if req.Year != nil {
			e.Year = *req.Year
		}
		if req.RentAmountCents != nil {
			e.RentAmountCents = *req.RentAmountCents
		}
		if req.DueDate != nil {
			e.DueDate = *req.DueDate
		}
		if req.PaidAmountCents != nil {
			e.PaidAmountCents = *req.PaidAmountCents
		}
		if req.PaidDate != nil {
			e.PaidDate = req.PaidDate
		}
		if req.Status != nil {
			e.Status = models.RentStatusType(*req.Status)
		}
		if req.PaymentMethod != nil {
			e.PaymentMethod = models.PaymentMethodType(*req.PaymentMethod)
		}
		if req.Notes != nil {
			e.Notes = *req.Notes
		}
		updated = e
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Rent entry not found")
		}
		return nil, utils.InternalError("Could not update rent entry", err)
	}

	return s.populated(ctx, ownerID, updated), nil
}

// MarkPaid records a payment. The paid amount is an overwrite, not an
// increment: a landlord recording two partial payments must send the
// cumulative total on the second call. Status becomes paid when the amount
// covers the rent, partial when it covers some of it, and is left alone
// when the amount is zero.
func (s *rentEntryService) MarkPaid(ctx context.Context, ownerID, entryID uuid.UUID, req *dtos.MarkPaidRequest) (*dtos.RentEntryResponse, error) {
	var updated *models.RentEntry
	err := s.entryRepo.UpdateWithRetry(ctx, entryID, ownerID, func(e *models.RentEntry) error {
		amount := e.RentAmountCents
		if req.PaidAmountCents != nil {
			amount = *req.PaidAmountCents
		}

		paidDate := s.now()
		if req.PaidDate != nil {
			paidDate = *req.PaidDate
		}

		method := models.PaymentMethodOther
		if req.PaymentMethod != "" {
			method = models.PaymentMethodType(req.PaymentMethod)
		}

		e.PaidAmountCents = amount
		e.PaidDate = &paidDate
		e.PaymentMethod = method

		if amount >= e.RentAmountCents {
			e.Status = models.RentStatusPaid
		} else if amount > 0 {
			e.Status = models.RentStatusPartial
		}

		updated = e
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Rent entry not found")
		}
		return nil, utils.InternalError("Could not record payment", err)
	}

	return s.populated(ctx, ownerID, updated), nil
}

func (s *rentEntryService) DeleteEntry(ctx context.Context, ownerID, entryID uuid.UUID) error {
	if err := s.entryRepo.Delete(ctx, entryID, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Rent entry not found")
		}
		return utils.InternalError("Could not delete rent entry", err)
	}
	return nil
}

/* ---------- aggregates & generation ---------- */

func (s *rentEntryService) Statistics(ctx context.Context, ownerID uuid.UUID) (*dtos.RentStats, error) {
	entries, err := s.entryRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not load rent entries", err)
	}
	return ComputeRentStats(entries), nil
}

func (s *rentEntryService) Regenerate(ctx context.Context, ownerID, tenantID, propertyID uuid.UUID) (*dtos.GenerateEntriesResponse, error) {
	created, err := s.schedule.Generate(ctx, ownerID, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByTenantAndProperty(ctx, tenantID, propertyID, ownerID)
	if err != nil {
		return nil, utils.InternalError("Could not list rent entries", err)
	}

	propMap, tenantMap := fetchEntryRelations(ctx, ownerID, entries, s.propRepo, s.tenantRepo)
	out := make([]*dtos.RentEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRentEntryResponse(e, propMap[e.PropertyID], tenantMap[e.TenantID]))
	}

	return &dtos.GenerateEntriesResponse{
		Message:          "Rent entries generated successfully",
		EntriesGenerated: created,
		Entries:          out,
	}, nil
}

/* ---------- internals ---------- */

func (s *rentEntryService) populated(ctx context.Context, ownerID uuid.UUID, e *models.RentEntry) *dtos.RentEntryResponse {
	property, err := s.propRepo.GetByID(ctx, e.PropertyID, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not fetch property %s", e.PropertyID)
	}
	tenant, err := s.tenantRepo.GetByID(ctx, e.TenantID, ownerID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not fetch tenant %s", e.TenantID)
	}
	return toRentEntryResponse(e, property, tenant)
}
