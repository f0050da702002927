package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/utils"
)

func seedPair(t *testing.T, env *testEnv, ownerID uuid.UUID, moveIn *time.Time) (*models.Tenant, *models.Property) {
	t.Helper()

	property := &models.Property{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Address:          "12 Main St",
		City:             "Knoxville",
		State:            "TN",
		ZipCode:          "37902",
		PropertyType:     models.PropertyTypeApartment,
		MonthlyRentCents: 120000,
		Status:           models.PropertyStatusAvailable,
	}
	require.NoError(t, env.propRepo.Create(context.Background(), property))

	tenant := &models.Tenant{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       "Dana Reyes",
		Phone:      "+15550001111",
		MoveInDate: moveIn,
		Status:     models.TenantStatusActive,
	}
	require.NoError(t, env.tenantRepo.Create(context.Background(), tenant))

	return tenant, property
}

func TestBuildScheduleFromMoveInThroughCurrentMonth(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	entries := env.schedule.BuildSchedule(ownerID, tenant, property)

	// January through April inclusive.
	require.Len(t, entries, 4)
	for i, e := range entries {
		require.Equal(t, i+1, e.Month)
		require.Equal(t, 2024, e.Year)
		require.Equal(t, int64(120000), e.RentAmountCents)
		require.Equal(t, time.Date(2024, time.Month(i+1), 5, 0, 0, 0, 0, time.UTC), e.DueDate)
	}

	// Jan-Mar due dates are behind the clock; April 5th is still ahead.
	require.Equal(t, models.RentStatusOverdue, entries[0].Status)
	require.Equal(t, models.RentStatusOverdue, entries[1].Status)
	require.Equal(t, models.RentStatusOverdue, entries[2].Status)
	require.Equal(t, models.RentStatusPending, entries[3].Status)
}

func TestBuildScheduleCrossesYearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	entries := env.schedule.BuildSchedule(ownerID, tenant, property)

	require.Len(t, entries, 4) // Nov, Dec, Jan, Feb
	require.Equal(t, 11, entries[0].Month)
	require.Equal(t, 2023, entries[0].Year)
	require.Equal(t, 12, entries[1].Month)
	require.Equal(t, 2023, entries[1].Year)
	require.Equal(t, 1, entries[2].Month)
	require.Equal(t, 2024, entries[2].Year)
	require.Equal(t, 2, entries[3].Month)
	require.Equal(t, 2024, entries[3].Year)
}

func TestGeneratePersistsAndIsIdempotent(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	created, err := env.schedule.Generate(context.Background(), ownerID, tenant.ID, property.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), created)

	// A second run finds every period already covered.
	created, err = env.schedule.Generate(context.Background(), ownerID, tenant.ID, property.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), created)

	stored, err := env.entryRepo.ListByTenantAndProperty(context.Background(), tenant.ID, property.ID, ownerID)
	require.NoError(t, err)
	require.Len(t, stored, 4)
}

func TestGenerateRequiresMoveInDate(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	tenant, property := seedPair(t, env, ownerID, nil)

	_, err := env.schedule.Generate(context.Background(), ownerID, tenant.ID, property.ID)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.Equal(t, utils.ErrCodePreconditionFailed, appErr.Code)
}

func TestGenerateUnknownTenantIsNotFound(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, property := seedPair(t, env, ownerID, &moveIn)

	_, err := env.schedule.Generate(context.Background(), ownerID, uuid.New(), property.ID)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestGenerateScopedToOwner(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ownerID := uuid.New()

	moveIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := seedPair(t, env, ownerID, &moveIn)

	// Another landlord cannot reach this pair.
	_, err := env.schedule.Generate(context.Background(), uuid.New(), tenant.ID, property.ID)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
