package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/lodgeline/rent-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// AssignmentRepository is the single writer of the occupancy invariant:
// a property's status/current_tenant_id pair and the rent entries that back
// it change together, inside one transaction. Nothing else in the codebase
// writes status='occupied'.
type AssignmentRepository interface {
	// AssignTenant marks the property occupied by the tenant and inserts the
	// supplied schedule, skipping billing periods that already exist.
	// Returns the number of entries actually created.
	AssignTenant(ctx context.Context, propertyID, tenantID, ownerID uuid.UUID, entries []*models.RentEntry) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type assignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepo{pool: pool}
}

func (r *assignmentRepo) AssignTenant(
	ctx context.Context,
	propertyID, tenantID, ownerID uuid.UUID,
	entries []*models.RentEntry,
) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE properties SET
            current_tenant_id=$1, status=$2,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$3 AND owner_id=$4
    `, tenantID, models.PropertyStatusOccupied, propertyID, ownerID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, pgx.ErrNoRows
	}

	created, err := insertRentEntriesSkipExisting(ctx, tx, entries)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}
