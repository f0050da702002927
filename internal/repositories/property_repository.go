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

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Property, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error)
	FindByCurrentTenant(ctx context.Context, tenantID, ownerID uuid.UUID) (*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Property) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_id, address, city, state, zip_code,
            property_type, bedrooms, bathrooms, square_feet,
            monthly_rent_cents, description, status, current_tenant_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, NOW(), NOW(), 1)
    `,
		p.ID,
		p.OwnerID,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.PropertyType,
		p.Bedrooms,
		p.Bathrooms,
		p.SquareFeet,
		p.MonthlyRentCents,
		p.Description,
		p.Status,
		p.CurrentTenantID,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String(), ownerID.String())
}

func (r *propertyRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE owner_id=$1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) FindByCurrentTenant(ctx context.Context, tenantID, ownerID uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE current_tenant_id=$1 AND owner_id=$2", tenantID, ownerID)
	return scanProperty(row)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), ownerID.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE properties SET
            address=$1, city=$2, state=$3, zip_code=$4,
            property_type=$5, bedrooms=$6, bathrooms=$7, square_feet=$8,
            monthly_rent_cents=$9, description=$10, status=$11,
            current_tenant_id=$12, updated_at=NOW()
    `
	args := []any{
		p.Address, p.City, p.State, p.ZipCode,
		p.PropertyType, p.Bedrooms, p.Bathrooms, p.SquareFeet,
		p.MonthlyRentCents, p.Description, p.Status,
		p.CurrentTenantID,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$13 AND owner_id=$14 AND row_version=$15`
		args = append(args, p.ID, p.OwnerID, expected)
	} else {
		sql += ` WHERE id=$13 AND owner_id=$14`
		args = append(args, p.ID, p.OwnerID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_id, address, city, state, zip_code,
            property_type, bedrooms, bathrooms, square_feet,
            monthly_rent_cents, description, status, current_tenant_id,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.PropertyType,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.SquareFeet,
		&p.MonthlyRentCents,
		&p.Description,
		&p.Status,
		&p.CurrentTenantID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
