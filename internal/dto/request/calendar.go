package request

type BlockDatesRequest struct {
	Dates  []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
	Reason string   `json:"reason" validate:"max=255"`
}

type UnblockDatesRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

// DayOverrideRequest is an explicit per-day changeset: nil fields stay untouched.
type DayOverrideRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Price       *int64 `json:"price" validate:"omitempty,min=0"`
	MinimumStay *int   `json:"minimum_stay" validate:"omitempty,min=1"`
}
