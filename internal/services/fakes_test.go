package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/lodgeline/rent-service/internal/models"
	"github.com/lodgeline/rent-service/internal/repositories"
)

// In-memory stand-ins for the repositories, sharing one store so the
// services see a consistent view across repos.

var (
	_ repositories.PropertyRepository   = (*fakePropertyRepo)(nil)
	_ repositories.TenantRepository     = (*fakeTenantRepo)(nil)
	_ repositories.RentEntryRepository  = (*fakeRentEntryRepo)(nil)
	_ repositories.AssignmentRepository = (*fakeAssignmentRepo)(nil)
)

type fakeStore struct {
	properties map[uuid.UUID]*models.Property
	tenants    map[uuid.UUID]*models.Tenant
	entries    map[uuid.UUID]*models.RentEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		properties: make(map[uuid.UUID]*models.Property),
		tenants:    make(map[uuid.UUID]*models.Tenant),
		entries:    make(map[uuid.UUID]*models.RentEntry),
	}
}

func (s *fakeStore) hasPeriod(tenantID, propertyID uuid.UUID, month, year int) bool {
	for _, e := range s.entries {
		if e.TenantID == tenantID && e.PropertyID == propertyID && e.Month == month && e.Year == year {
			return true
		}
	}
	return false
}

func sortedEntries(entries []*models.RentEntry) []*models.RentEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year < entries[j].Year
		}
		return entries[i].Month < entries[j].Month
	})
	return entries
}

/* ---------- properties ---------- */

type fakePropertyRepo struct{ store *fakeStore }

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	cp := *p
	r.store.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id, ownerID uuid.UUID) (*models.Property, error) {
	p, ok := r.store.properties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.store.properties {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) FindByCurrentTenant(_ context.Context, tenantID, ownerID uuid.UUID) (*models.Property, error) {
	for _, p := range r.store.properties {
		if p.OwnerID == ownerID && p.CurrentTenantID != nil && *p.CurrentTenantID == tenantID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	cp := *p
	r.store.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) UpdateIfVersion(_ context.Context, p *models.Property, _ int64) (pgconn.CommandTag, error) {
	cp := *p
	r.store.properties[p.ID] = &cp
	return nil, nil
}

func (r *fakePropertyRepo) UpdateWithRetry(_ context.Context, id, ownerID uuid.UUID, mutate func(*models.Property) error) error {
	p, ok := r.store.properties[id]
	if !ok || p.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	return mutate(p)
}

func (r *fakePropertyRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	p, ok := r.store.properties[id]
	if !ok || p.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.store.properties, id)
	return nil
}

/* ---------- tenants ---------- */

type fakeTenantRepo struct{ store *fakeStore }

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	cp := *t
	r.store.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id, ownerID uuid.UUID) (*models.Tenant, error) {
	t, ok := r.store.tenants[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTenantRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for _, t := range r.store.tenants {
		if t.OwnerID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	cp := *t
	r.store.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) UpdateIfVersion(_ context.Context, t *models.Tenant, _ int64) (pgconn.CommandTag, error) {
	cp := *t
	r.store.tenants[t.ID] = &cp
	return nil, nil
}

func (r *fakeTenantRepo) UpdateWithRetry(_ context.Context, id, ownerID uuid.UUID, mutate func(*models.Tenant) error) error {
	t, ok := r.store.tenants[id]
	if !ok || t.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	return mutate(t)
}

func (r *fakeTenantRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	t, ok := r.store.tenants[id]
	if !ok || t.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.store.tenants, id)
	return nil
}

/* ---------- rent entries ---------- */

type fakeRentEntryRepo struct{ store *fakeStore }

func (r *fakeRentEntryRepo) Create(_ context.Context, e *models.RentEntry) error {
	if r.store.hasPeriod(e.TenantID, e.PropertyID, e.Month, e.Year) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "rent_entries_period_key"}
	}
	cp := *e
	r.store.entries[e.ID] = &cp
	return nil
}

func (r *fakeRentEntryRepo) CreateMany(_ context.Context, entries []*models.RentEntry) (int64, error) {
	var created int64
	for _, e := range entries {
		if r.store.hasPeriod(e.TenantID, e.PropertyID, e.Month, e.Year) {
			continue
		}
		cp := *e
		r.store.entries[e.ID] = &cp
		created++
	}
	return created, nil
}

func (r *fakeRentEntryRepo) GetByID(_ context.Context, id, ownerID uuid.UUID) (*models.RentEntry, error) {
	e, ok := r.store.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRentEntryRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.filter(func(e *models.RentEntry) bool { return e.OwnerID == ownerID }), nil
}

func (r *fakeRentEntryRepo) ListByTenantID(_ context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.filter(func(e *models.RentEntry) bool {
		return e.TenantID == tenantID && e.OwnerID == ownerID
	}), nil
}

func (r *fakeRentEntryRepo) ListByTenantAndProperty(_ context.Context, tenantID, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.filter(func(e *models.RentEntry) bool {
		return e.TenantID == tenantID && e.PropertyID == propertyID && e.OwnerID == ownerID
	}), nil
}

func (r *fakeRentEntryRepo) ListUnpaidByTenantID(_ context.Context, tenantID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.filter(func(e *models.RentEntry) bool {
		return e.TenantID == tenantID && e.OwnerID == ownerID && e.IsUnpaid()
	}), nil
}

func (r *fakeRentEntryRepo) ListUnpaidByPropertyID(_ context.Context, propertyID, ownerID uuid.UUID) ([]*models.RentEntry, error) {
	return r.filter(func(e *models.RentEntry) bool {
		return e.PropertyID == propertyID && e.OwnerID == ownerID && e.IsUnpaid()
	}), nil
}

func (r *fakeRentEntryRepo) filter(keep func(*models.RentEntry) bool) []*models.RentEntry {
	var out []*models.RentEntry
	for _, e := range r.store.entries {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return sortedEntries(out)
}

func (r *fakeRentEntryRepo) Update(_ context.Context, e *models.RentEntry) error {
	cp := *e
	r.store.entries[e.ID] = &cp
	return nil
}

func (r *fakeRentEntryRepo) UpdateIfVersion(_ context.Context, e *models.RentEntry, _ int64) (pgconn.CommandTag, error) {
	cp := *e
	r.store.entries[e.ID] = &cp
	return nil, nil
}

func (r *fakeRentEntryRepo) UpdateWithRetry(_ context.Context, id, ownerID uuid.UUID, mutate func(*models.RentEntry) error) error {
	e, ok := r.store.entries[id]
	if !ok || e.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	return mutate(e)
}

func (r *fakeRentEntryRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	e, ok := r.store.entries[id]
	if !ok || e.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.store.entries, id)
	return nil
}

/* ---------- assignment ---------- */

// testEnv wires every service against the shared fake store with a frozen
// clock, so tests can reason about overdue/pending boundaries exactly.
type testEnv struct {
	store      *fakeStore
	propRepo   *fakePropertyRepo
	tenantRepo *fakeTenantRepo
	entryRepo  *fakeRentEntryRepo
	assignRepo *fakeAssignmentRepo

	schedule    RentScheduleService
	assignments AssignmentService
	properties  PropertyService
	tenants     TenantService
	entries     RentEntryService
}

func newTestEnv(now time.Time) *testEnv {
	store := newFakeStore()
	env := &testEnv{
		store:      store,
		propRepo:   &fakePropertyRepo{store: store},
		tenantRepo: &fakeTenantRepo{store: store},
		entryRepo:  &fakeRentEntryRepo{store: store},
		assignRepo: &fakeAssignmentRepo{store: store},
	}
	clock := func() time.Time { return now }
	env.schedule = NewRentScheduleService(env.tenantRepo, env.propRepo, env.entryRepo, clock)
	env.assignments = NewAssignmentService(env.propRepo, env.tenantRepo, env.assignRepo, env.schedule)
	env.properties = NewPropertyService(env.propRepo, env.tenantRepo, env.entryRepo)
	env.tenants = NewTenantService(env.tenantRepo, env.propRepo, env.entryRepo)
	env.entries = NewRentEntryService(env.entryRepo, env.propRepo, env.tenantRepo, env.schedule, clock)
	return env
}

type fakeAssignmentRepo struct{ store *fakeStore }

func (r *fakeAssignmentRepo) AssignTenant(
	_ context.Context,
	propertyID, tenantID, ownerID uuid.UUID,
	entries []*models.RentEntry,
) (int64, error) {
	p, ok := r.store.properties[propertyID]
	if !ok || p.OwnerID != ownerID {
		return 0, pgx.ErrNoRows
	}

	tid := tenantID
	p.CurrentTenantID = &tid
	p.Status = models.PropertyStatusOccupied

	var created int64
	for _, e := range entries {
		if r.store.hasPeriod(e.TenantID, e.PropertyID, e.Month, e.Year) {
			continue
		}
		cp := *e
		r.store.entries[e.ID] = &cp
		created++
	}
	return created, nil
}
