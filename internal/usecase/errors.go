package usecase

import (
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
)

// RejectionKind classifies engine failures so callers can decide whether a retry
// makes sense. No kind is ever swallowed; every rejection carries the offending
// date or field.
type RejectionKind string

const (
	// KindValidation: malformed input. Never retried automatically.
	KindValidation RejectionKind = "validation"
	// KindAvailabilityConflict: dates not bookable. Terminal for this request;
	// the caller must resubmit with different parameters.
	KindAvailabilityConflict RejectionKind = "availability_conflict"
	// KindInvalidTransition: lifecycle ordering bug in the caller.
	KindInvalidTransition RejectionKind = "invalid_transition"
	// KindPersistenceConflict: a concurrent calendar mutation won the race.
	// Retryable with the same request since nothing was mutated.
	KindPersistenceConflict RejectionKind = "persistence_conflict"
	// KindNotFound: referenced rental/booking/config does not exist.
	KindNotFound RejectionKind = "not_found"
	// KindExternalFailure: payment or notification collaborator failed. Never
	// reverts committed calendar or booking state; retried out of band.
	KindExternalFailure RejectionKind = "external_failure"
)

const (
	ReasonInvalidRange        = "invalid_range"
	ReasonGuestLimitExceeded  = "guest_limit_exceeded"
	ReasonStayTooShort        = "stay_too_short"
	ReasonStayTooLong         = "stay_too_long"
	ReasonDateUnavailable     = "date_unavailable"
	ReasonInsufficientNotice  = "insufficient_advance_notice"
	ReasonCalendarConflict    = "calendar_conflict"
	ReasonBlockedDayOccupied  = "blocked_day_occupied"
	ReasonInvalidTransition   = "invalid_transition"
	ReasonPetsNotAllowed      = "pets_not_allowed"
	ReasonTransitionTooEarly  = "transition_too_early"
)

type Rejection struct {
	Kind   RejectionKind
	Reason string
	Field  string
	Date   *time.Time
	Detail string
}

func (e *Rejection) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.Date != nil {
		msg += fmt.Sprintf(" (date %s)", e.Date.Format("2006-01-02"))
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func rejectValidation(reason, field, detail string) *Rejection {
	return &Rejection{Kind: KindValidation, Reason: reason, Field: field, Detail: detail}
}

func rejectUnavailable(reason string, date time.Time) *Rejection {
	d := entity.Date(date)
	return &Rejection{Kind: KindAvailabilityConflict, Reason: reason, Date: &d}
}

func rejectConflict(date time.Time) *Rejection {
	d := entity.Date(date)
	return &Rejection{Kind: KindAvailabilityConflict, Reason: ReasonCalendarConflict, Date: &d}
}

func rejectTransition(from, attempted entity.BookingStatus) *Rejection {
	return &Rejection{
		Kind:   KindInvalidTransition,
		Reason: ReasonInvalidTransition,
		Detail: fmt.Sprintf("cannot move from %s to %s", from, attempted),
	}
}

func rejectNotFound(what, id string) *Rejection {
	return &Rejection{Kind: KindNotFound, Reason: what + "_not_found", Detail: id}
}
