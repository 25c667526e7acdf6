package request

type GuestCountsRequest struct {
	Adults   int `json:"adults" validate:"required,min=1"`
	Children int `json:"children" validate:"min=0"`
	Infants  int `json:"infants" validate:"min=0"`
	Pets     int `json:"pets" validate:"min=0"`
}

type SubmitBookingRequest struct {
	RentalID     string             `json:"rental_id" validate:"required,uuid4"`
	CheckInDate  string             `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string             `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests       GuestCountsRequest `json:"guests" validate:"required"`
}

// QuoteRequest is the read-only pricing preview used by the UI before
// submission. It never mutates the calendar.
type QuoteRequest struct {
	RentalID     string             `json:"rental_id" validate:"required,uuid4"`
	CheckInDate  string             `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string             `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests       GuestCountsRequest `json:"guests" validate:"required"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelled_by" validate:"required,uuid4"`
	Reason      string `json:"reason" validate:"max=500"`
}
