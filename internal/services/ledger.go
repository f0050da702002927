package services

import (
	"math"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/models"
)

// ComputeRentStats derives payment statistics from a set of rent entries.
// Pure read-time computation: nothing is persisted and the result is
// recomputed on every request.
func ComputeRentStats(entries []*models.RentEntry) *dtos.RentStats {
	stats := &dtos.RentStats{TotalEntries: len(entries)}

	for _, e := range entries {
		stats.TotalAmountCents += e.RentAmountCents
		stats.TotalPaidCents += e.PaidAmountCents

		switch e.Status {
		case models.RentStatusPending:
			stats.PendingCount++
			stats.PendingAmountCents += e.OutstandingCents()
		case models.RentStatusOverdue:
			stats.OverdueCount++
			stats.OverdueAmountCents += e.OutstandingCents()
		case models.RentStatusPartial:
			stats.PartialCount++
			stats.PartialPaidCents += e.PaidAmountCents
		case models.RentStatusPaid:
			stats.PaidCount++
		}
	}

	stats.RemainingCents = stats.TotalAmountCents - stats.TotalPaidCents

	// Collection rate in percent, one decimal. Zero entries means zero rate,
	// not a division by zero.
	if stats.TotalAmountCents > 0 {
		rate := float64(stats.TotalPaidCents) / float64(stats.TotalAmountCents) * 100
		stats.CollectionRate = math.Round(rate*10) / 10
	}

	return stats
}
