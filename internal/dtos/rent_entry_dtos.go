package dtos

import (
	"time"

	"github.com/google/uuid"
)

// CreateRentEntryRequest is the payload for POST /api/v1/rent-entries.
//
// Two shapes are accepted, mirroring the two ways an entry comes to exist:
//   - assignment: only property_id + tenant_id set (month omitted); the
//     whole schedule is generated from the tenant's move-in date;
//   - manual: month/year/rent_amount_cents describe a single entry.
type CreateRentEntryRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	TenantID   uuid.UUID `json:"tenant_id" validate:"required"`

	Month           int        `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Year            int        `json:"year,omitempty" validate:"omitempty,gte=1970"`
	RentAmountCents int64      `json:"rent_amount_cents,omitempty" validate:"gte=0"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PaidAmountCents int64      `json:"paid_amount_cents,omitempty" validate:"gte=0"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue partial"`
	PaymentMethod   string     `json:"payment_method,omitempty" validate:"omitempty,oneof=cash check bank_transfer online other"`
	Notes           string     `json:"notes,omitempty"`
}

// IsAssignment reports whether the request is the assignment shape.
func (r *CreateRentEntryRequest) IsAssignment() bool {
	return r.Month == 0
}

type UpdateRentEntryRequest struct {
	Month           *int       `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Year            *int       `json:"year,omitempty" validate:"omitempty,gte=1970"`
	RentAmountCents *int64     `json:"rent_amount_cents,omitempty" validate:"omitempty,gte=0"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PaidAmountCents *int64     `json:"paid_amount_cents,omitempty" validate:"omitempty,gte=0"`
	PaidDate        *time.Time `json:"paid_date,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue partial"`
	PaymentMethod   *string    `json:"payment_method,omitempty" validate:"omitempty,oneof=cash check bank_transfer online other"`
	Notes           *string    `json:"notes,omitempty"`
}

// MarkPaidRequest records a payment against an entry. paid_amount_cents is
// the CUMULATIVE amount paid, not an increment: each call overwrites the
// stored paid amount (see the mark-paid contract in the service).
type MarkPaidRequest struct {
	PaidAmountCents *int64     `json:"paid_amount_cents,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod   string     `json:"payment_method,omitempty" validate:"omitempty,oneof=cash check bank_transfer online other"`
	PaidDate        *time.Time `json:"paid_date,omitempty"`
}

// RegenerateRequest re-runs the schedule generator for a (tenant, property)
// pair, typically after a move-in date correction. Safe to repeat: months
// already covered are skipped.
type RegenerateRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	TenantID   uuid.UUID `json:"tenant_id" validate:"required"`
}

// RentEntryResponse is the entry plus short summaries of its property and
// tenant.
type RentEntryResponse struct {
	ID              uuid.UUID        `json:"id"`
	PropertyID      uuid.UUID        `json:"property_id"`
	TenantID        uuid.UUID        `json:"tenant_id"`
	Month           int              `json:"month"`
	Year            int              `json:"year"`
	RentAmountCents int64            `json:"rent_amount_cents"`
	DueDate         time.Time        `json:"due_date"`
	PaidDate        *time.Time       `json:"paid_date,omitempty"`
	PaidAmountCents int64            `json:"paid_amount_cents"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	Notes           string           `json:"notes,omitempty"`
	Property        *PropertySummary `json:"property,omitempty"`
	Tenant          *TenantSummary   `json:"tenant,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// GenerateEntriesResponse reports a (re)generation run.
type GenerateEntriesResponse struct {
	Message          string               `json:"message"`
	EntriesGenerated int64                `json:"entries_generated"`
	Entries          []*RentEntryResponse `json:"entries"`
}

// RentStats is the ledger aggregate: recomputed from the entry set on every
// request, never persisted.
type RentStats struct {
	TotalAmountCents   int64   `json:"total_amount_cents"`
	TotalPaidCents     int64   `json:"total_paid_cents"`
	RemainingCents     int64   `json:"remaining_cents"`
	PendingAmountCents int64   `json:"pending_amount_cents"`
	OverdueAmountCents int64   `json:"overdue_amount_cents"`
	PartialPaidCents   int64   `json:"partial_paid_cents"`
	PendingCount       int     `json:"pending_count"`
	OverdueCount       int     `json:"overdue_count"`
	PartialCount       int     `json:"partial_count"`
	PaidCount          int     `json:"paid_count"`
	TotalEntries       int     `json:"total_entries"`
	CollectionRate     float64 `json:"collection_rate"` // percent, one decimal
}

type MessageResponse struct {
	Message string `json:"message"`
}
