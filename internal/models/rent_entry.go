package models

import (
	"time"

	"github.com/google/uuid"
)

// RentStatusType defines the possible states of a rent entry.
type RentStatusType string

const (
	RentStatusPending RentStatusType = "pending"
	RentStatusPaid    RentStatusType = "paid"
	RentStatusOverdue RentStatusType = "overdue"
	RentStatusPartial RentStatusType = "partial"
)

// PaymentMethodType defines how a rent payment was made.
type PaymentMethodType string

const (
	PaymentMethodCash         PaymentMethodType = "cash"
	PaymentMethodCheck        PaymentMethodType = "check"
	PaymentMethodBankTransfer PaymentMethodType = "bank_transfer"
	PaymentMethodOnline       PaymentMethodType = "online"
	PaymentMethodOther        PaymentMethodType = "other"
)

// RentEntry is one expected rent charge for a (tenant, property) pair in a
// given billing period. RentAmountCents is a snapshot of the property's
// monthly rent at generation time, not a live reference. The pair plus
// (month, year) is unique, enforced by the rent_entries_period_key index.
type RentEntry struct {
	Versioned
	ID              uuid.UUID         `json:"id"`
	OwnerID         uuid.UUID         `json:"owner_id"`
	PropertyID      uuid.UUID         `json:"property_id"`
	TenantID        uuid.UUID         `json:"tenant_id"`
	Month           int               `json:"month"` // 1-12
	Year            int               `json:"year"`
	RentAmountCents int64             `json:"rent_amount_cents"`
	DueDate         time.Time         `json:"due_date"`
	PaidDate        *time.Time        `json:"paid_date,omitempty"`
	PaidAmountCents int64             `json:"paid_amount_cents"`
	Status          RentStatusType    `json:"status"`
	PaymentMethod   PaymentMethodType `json:"payment_method"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (e *RentEntry) GetID() string { return e.ID.String() }

// OutstandingCents is the unpaid remainder of the entry.
func (e *RentEntry) OutstandingCents() int64 {
	return e.RentAmountCents - e.PaidAmountCents
}

// IsUnpaid reports whether the entry still counts against the tenant's
// balance (pending, overdue, or partially paid).
func (e *RentEntry) IsUnpaid() bool {
	switch e.Status {
	case RentStatusPending, RentStatusOverdue, RentStatusPartial:
		return true
	}
	return false
}
