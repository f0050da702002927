package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/utils"
)

func TestCreateManualEntryComputesStatusFromDueDate(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	// April's 5th is already behind the clock.
	resp, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)
	require.Equal(t, "overdue", resp.Status)
	require.Equal(t, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), resp.DueDate)

	// May is still ahead.
	resp, err = env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           5,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
}

func TestCreateManualEntryDuplicatePeriodConflicts(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	req := &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	}
	_, err := env.entries.CreateManualEntry(context.Background(), ownerID, req)
	require.NoError(t, err)

	_, err = env.entries.CreateManualEntry(context.Background(), ownerID, req)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusConflict, appErr.StatusCode)
	require.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestMarkPaidDefaultsToFullRent(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)

	resp, err := env.entries.MarkPaid(context.Background(), ownerID, created.ID, &dtos.MarkPaidRequest{})
	require.NoError(t, err)

	require.Equal(t, "paid", resp.Status)
	require.Equal(t, int64(120000), resp.PaidAmountCents)
	require.NotNil(t, resp.PaidDate)
	require.Equal(t, now, *resp.PaidDate)
	require.Equal(t, "other", resp.PaymentMethod)
}

func TestMarkPaidPartialAmount(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)

	amount := int64(40000)
	resp, err := env.entries.MarkPaid(context.Background(), ownerID, created.ID, &dtos.MarkPaidRequest{
		PaidAmountCents: &amount,
		PaymentMethod:   "check",
	})
	require.NoError(t, err)

	require.Equal(t, "partial", resp.Status)
	require.Equal(t, int64(40000), resp.PaidAmountCents)
	require.Equal(t, "check", resp.PaymentMethod)
}

func TestMarkPaidOverwritesNotAccumulates(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)

	first := int64(40000)
	_, err = env.entries.MarkPaid(context.Background(), ownerID, created.ID, &dtos.MarkPaidRequest{PaidAmountCents: &first})
	require.NoError(t, err)

	// The second call replaces the stored amount; it does not add to it.
	second := int64(60000)
	resp, err := env.entries.MarkPaid(context.Background(), ownerID, created.ID, &dtos.MarkPaidRequest{PaidAmountCents: &second})
	require.NoError(t, err)

	require.Equal(t, int64(60000), resp.PaidAmountCents)
	require.Equal(t, "partial", resp.Status)
}

func TestMarkPaidZeroLeavesStatusAlone(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)
	require.Equal(t, "overdue", created.Status)

	zero := int64(0)
	resp, err := env.entries.MarkPaid(context.Background(), ownerID, created.ID, &dtos.MarkPaidRequest{PaidAmountCents: &zero})
	require.NoError(t, err)

	require.Equal(t, "overdue", resp.Status)
	require.Equal(t, int64(0), resp.PaidAmountCents)
}

func TestMarkPaidUnknownEntryIsNotFound(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)

	_, err := env.entries.MarkPaid(context.Background(), uuid.New(), uuid.New(), &dtos.MarkPaidRequest{})
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestStatisticsAggregatesOwnerEntries(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	_, err := env.assignments.AssignTenantToProperty(context.Background(), ownerID, property.ID, tenant.ID)
	require.NoError(t, err)

	entries, err := env.entryRepo.ListByTenantID(context.Background(), tenant.ID, ownerID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Pay off February in full.
	_, err = env.entries.MarkPaid(context.Background(), ownerID, entries[0].ID, &dtos.MarkPaidRequest{})
	require.NoError(t, err)

	stats, err := env.entries.Statistics(context.Background(), ownerID)
	require.NoError(t, err)

	require.Equal(t, 3, stats.TotalEntries)
	require.Equal(t, int64(360000), stats.TotalAmountCents)
	require.Equal(t, int64(120000), stats.TotalPaidCents)
	require.Equal(t, 1, stats.PaidCount)
	require.Equal(t, 33.3, stats.CollectionRate)
}

func TestRegenerateReturnsFullScheduleAndNewCount(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	resp, err := env.entries.Regenerate(context.Background(), ownerID, tenant.ID, property.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.EntriesGenerated)
	require.Len(t, resp.Entries, 2)

	// After a move-in correction, only the newly uncovered months get created.
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err = env.tenantRepo.UpdateWithRetry(context.Background(), tenant.ID, ownerID, func(tn *models.Tenant) error {
		tn.MoveInDate = &earlier
		return nil
	})
	require.NoError(t, err)

	resp, err = env.entries.Regenerate(context.Background(), ownerID, tenant.ID, property.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.EntriesGenerated) // Jan + Feb
	require.Len(t, resp.Entries, 4)
}

func TestDeleteEntry(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.entries.CreateManualEntry(context.Background(), ownerID, &dtos.CreateRentEntryRequest{
		PropertyID:      property.ID,
		TenantID:        tenant.ID,
		Month:           4,
		Year:            2024,
		RentAmountCents: 120000,
	})
	require.NoError(t, err)

	require.NoError(t, env.entries.DeleteEntry(context.Background(), ownerID, created.ID))

	err = env.entries.DeleteEntry(context.Background(), ownerID, created.ID)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
