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

type RentEntryRepository interface {
	Create(ctx context.Context, e *models.RentEntry) error
	// CreateMany bulk-inserts entries, silently skipping any whose billing
	// period already exists for the same (tenant, property) pair. Returns
	// the number of rows actually inserted.
	CreateMany(ctx context.Context, entries []*models.RentEntry) (int64, error)

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.RentEntry, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.RentEntry, error)
	ListByTenantID(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error)
	ListByTenantAndProperty(ctx context.Context, tenantID, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error)
	ListUnpaidByTenantID(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error)
	ListUnpaidByPropertyID(ctx context.Context, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error)

	Update(ctx context.Context, e *models.RentEntry) error
	UpdateIfVersion(ctx context.Context, e *models.RentEntry, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.RentEntry) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type rentEntryRepo struct {
	*BaseVersionedRepo[*models.RentEntry]
	db DB
}

func NewRentEntryRepository(db DB) RentEntryRepository {
	r := &rentEntryRepo{db: db}
	selectStmt := baseSelectRentEntry() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanRentEntry)
	return r
}

/* ---------- create ---------- */

func (r *rentEntryRepo) Create(ctx context.Context, e *models.RentEntry) error {
	_, err := r.db.Exec(ctx, insertRentEntrySQL, insertRentEntryArgs(e)...)
	return err
}

func (r *rentEntryRepo) CreateMany(ctx context.Context, entries []*models.RentEntry) (int64, error) {
	return insertRentEntriesSkipExisting(ctx, r.db, entries)
}

/* ---------- reads ---------- */

func (r *rentEntryRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.RentEntry, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String(), ownerID.String())
}

func (r *rentEntryRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.list(ctx, " WHERE owner_id=$1 ORDER BY year DESC, month DESC", ownerID)
}

func (r *rentEntryRepo) ListByTenantID(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.list(ctx, " WHERE tenant_id=$1 AND owner_id=$2 ORDER BY year DESC, month DESC", tenantID, ownerID)
}

func (r *rentEntryRepo) ListByTenantAndProperty(ctx context.Context, tenantID, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.list(ctx,
		" WHERE tenant_id=$1 AND property_id=$2 AND owner_id=$3 ORDER BY year, month",
		tenantID, propertyID, ownerID)
}

func (r *rentEntryRepo) ListUnpaidByTenantID(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.list(ctx,
		" WHERE tenant_id=$1 AND owner_id=$2 AND status IN ('pending','overdue','partial') ORDER BY year, month",
		tenantID, ownerID)
}

func (r *rentEntryRepo) ListUnpaidByPropertyID(ctx context.Context, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.list(ctx,
		" WHERE property_id=$1 AND owner_id=$2 AND status IN ('pending','overdue','partial') ORDER BY year, month",
		propertyID, ownerID)
}

func (r *rentEntryRepo) list(ctx context.Context, where string, args ...any) ([]*models.RentEntry, error) {
	rows, err := r.db.Query(ctx, baseSelectRentEntry()+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.RentEntry
	for rows.Next() {
		e, err := scanRentEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

/* ---------- updates ---------- */

func (r *rentEntryRepo) Update(ctx context.Context, e *models.RentEntry) error {
	_, err := r.update(ctx, e, false, 0)
	return err
}

func (r *rentEntryRepo) UpdateIfVersion(ctx context.Context, e *models.RentEntry, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, e, true, expected)
}

func (r *rentEntryRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.RentEntry) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), ownerID.String(), mutate, r.UpdateIfVersion)
}

func (r *rentEntryRepo) update(ctx context.Context, e *models.RentEntry, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE rent_entries SET
            month=$1, year=$2, rent_amount_cents=$3, due_date=$4,
            paid_date=$5, paid_amount_cents=$6, status=$7,
            payment_method=$8, notes=$9, updated_at=NOW()
    `
	args := []any{
		e.Month, e.Year, e.RentAmountCents, e.DueDate,
		e.PaidDate, e.PaidAmountCents, e.Status,
		e.PaymentMethod, e.Notes,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$10 AND owner_id=$11 AND row_version=$12`
		args = append(args, e.ID, e.OwnerID, expected)
	} else {
		sql += ` WHERE id=$10 AND owner_id=$11`
		args = append(args, e.ID, e.OwnerID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *rentEntryRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rent_entries WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- shared SQL ---------- */

// The ON CONFLICT target is the rent_entries_period_key unique index, which
// is what makes repeated generation idempotent even under concurrent runs.
const insertRentEntrySQL = `
    INSERT INTO rent_entries (
        id, owner_id, property_id, tenant_id, month, year,
        rent_amount_cents, due_date, paid_date, paid_amount_cents,
        status, payment_method, notes,
        created_at, updated_at, row_version
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, NOW(), NOW(), 1)
`

const insertRentEntrySkipExistingSQL = insertRentEntrySQL + `
    ON CONFLICT (tenant_id, property_id, month, year) DO NOTHING
`

func insertRentEntryArgs(e *models.RentEntry) []any {
	return []any{
		e.ID, e.OwnerID, e.PropertyID, e.TenantID, e.Month, e.Year,
		e.RentAmountCents, e.DueDate, e.PaidDate, e.PaidAmountCents,
		e.Status, e.PaymentMethod, e.Notes,
	}
}

func insertRentEntriesSkipExisting(ctx context.Context, db DB, entries []*models.RentEntry) (int64, error) {
	var created int64
	for _, e := range entries {
		tag, err := db.Exec(ctx, insertRentEntrySkipExistingSQL, insertRentEntryArgs(e)...)
		if err != nil {
			return created, err
		}
		created += tag.RowsAffected()
	}
	return created, nil
}

func baseSelectRentEntry() string {
	return `
        SELECT
            id, owner_id, property_id, tenant_id, month, year,
            rent_amount_cents, due_date, paid_date, paid_amount_cents,
            status, payment_method, notes,
            created_at, updated_at, row_version
        FROM rent_entries
    `
}

func scanRentEntry(row pgx.Row) (*models.RentEntry, error) {
	var e models.RentEntry
	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.PropertyID,
		&e.TenantID,
		&e.Month,
		&e.Year,
		&e.RentAmountCents,
		&e.DueDate,
		&e.PaidDate,
		&e.PaidAmountCents,
		&e.Status,
		&e.PaymentMethod,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
