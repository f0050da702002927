package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/lodgeline/rent-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Tenant, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error)

	Update(ctx context.Context, t *models.Tenant) error
	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Tenant) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	selectStmt := baseSelectTenant() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanTenant)
	return r
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	var ecName, ecPhone, ecRelationship *string
	if t.EmergencyContact != nil {
		ecName = &t.EmergencyContact.Name
		ecPhone = &t.EmergencyContact.Phone
		ecRelationship = &t.EmergencyContact.Relationship
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, owner_id, name, phone,
            emergency_name, emergency_phone, emergency_relationship,
            move_in_date, status, notes,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
    `,
		t.ID,
		t.OwnerID,
		t.Name,
		t.Phone,
		ecName,
		ecPhone,
		ecRelationship,
		t.MoveInDate,
		t.Status,
		t.Notes,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String(), ownerID.String())
}

func (r *tenantRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE owner_id=$1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.update(ctx, t, false, 0)
	return err
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, t, true, expected)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), ownerID.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) update(ctx context.Context, t *models.Tenant, check bool, expected int64) (pgconn.CommandTag, error) {
	var ecName, ecPhone, ecRelationship *string
	if t.EmergencyContact != nil {
		ecName = &t.EmergencyContact.Name
		ecPhone = &t.EmergencyContact.Phone
		ecRelationship = &t.EmergencyContact.Relationship
	}

	sql := `
        UPDATE tenants SET
            name=$1, phone=$2,
            emergency_name=$3, emergency_phone=$4, emergency_relationship=$5,
            move_in_date=$6, status=$7, notes=$8, updated_at=NOW()
    `
	args := []any{
		t.Name, t.Phone,
		ecName, ecPhone, ecRelationship,
		t.MoveInDate, t.Status, t.Notes,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$9 AND owner_id=$10 AND row_version=$11`
		args = append(args, t.ID, t.OwnerID, expected)
	} else {
		sql += ` WHERE id=$9 AND owner_id=$10`
		args = append(args, t.ID, t.OwnerID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *tenantRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectTenant() string {
	return `
        SELECT
            id, owner_id, name, phone,
            emergency_name, emergency_phone, emergency_relationship,
            move_in_date, status, notes,
            created_at, updated_at, row_version
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var (
		t                            models.Tenant
		ecName, ecPhone, ecRelation *string
	)
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Name,
		&t.Phone,
		&ecName,
		&ecPhone,
		&ecRelation,
		&t.MoveInDate,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if ecName != nil || ecPhone != nil || ecRelation != nil {
		t.EmergencyContact = &models.EmergencyContact{}
		if ecName != nil {
			t.EmergencyContact.Name = *ecName
		}
		if ecPhone != nil {
			t.EmergencyContact.Phone = *ecPhone
		}
		if ecRelation != nil {
			t.EmergencyContact.Relationship = *ecRelation
		}
	}
	return &t, nil
}
