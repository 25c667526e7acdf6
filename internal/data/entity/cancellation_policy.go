package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PolicyType string

const (
	PolicyFlexible      PolicyType = "flexible"
	PolicyModerate      PolicyType = "moderate"
	PolicyStrict        PolicyType = "strict"
	PolicySuperStrict   PolicyType = "super_strict"
	PolicyNonRefundable PolicyType = "non_refundable"
)

// RefundSchedule maps a "days before check-in" threshold to a refund percentage.
type RefundSchedule struct {
	DaysBeforeCheckIn int `db:"days_before_check_in"`
	RefundPercentage  int `db:"refund_percentage"`
}

// CancellationPolicy is owned by a rental. Schedule is sorted ascending by
// DaysBeforeCheckIn with no duplicate thresholds.
type CancellationPolicy struct {
	RentalID         uuid.UUID  `db:"rental_id"`
	Type             PolicyType `db:"type"`
	GracePeriodHours int        `db:"grace_period_hours"`
	Schedule         []RefundSchedule
}

func (p CancellationPolicy) Validate() error {
	prev := -1
	for _, entry := range p.Schedule {
		if entry.RefundPercentage < 0 || entry.RefundPercentage > 100 {
			return fmt.Errorf("refund percentage %d out of range", entry.RefundPercentage)
		}
		if entry.DaysBeforeCheckIn <= prev {
			return fmt.Errorf("schedule not strictly ascending at threshold %d", entry.DaysBeforeCheckIn)
		}
		prev = entry.DaysBeforeCheckIn
	}
	return nil
}

type RefundQuote struct {
	RefundPercentage  int `json:"refund_percentage"`
	PenaltyPercentage int `json:"penalty_percentage"`
}

// Refund computes the refund split for cancelling at cancelAt against the given
// check-in date. The reference instant is always an explicit parameter; the policy
// never reads a clock.
//
// The grace window (hours before check-in) is always fully refundable and takes
// precedence over the schedule, including for non-refundable policies. Outside it,
// the last schedule entry whose threshold is <= whole days before check-in wins;
// no qualifying entry means no refund.
func (p CancellationPolicy) Refund(checkIn, cancelAt time.Time) RefundQuote {
	hoursBefore := checkIn.Sub(cancelAt).Hours()
	daysBefore := int(hoursBefore / 24)
	if hoursBefore < 0 {
		daysBefore = -1 // cancelled after check-in
	}

	percent := 0
	switch {
	case daysBefore < 0:
		percent = 0
	case p.GracePeriodHours > 0 && hoursBefore <= float64(p.GracePeriodHours):
		percent = 100
	case p.Type == PolicyNonRefundable:
		percent = 0
	default:
		for _, entry := range p.Schedule {
			if entry.DaysBeforeCheckIn <= daysBefore {
				percent = entry.RefundPercentage
			}
		}
	}

	percent = clampPercent(percent)
	return RefundQuote{RefundPercentage: percent, PenaltyPercentage: 100 - percent}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
