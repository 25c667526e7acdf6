package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type PriceLineResponse struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type PricingResponse struct {
	BaseAmount      int64               `json:"base_amount"`
	Nights          int                 `json:"nights"`
	Subtotal        int64               `json:"subtotal"`
	Fees            []PriceLineResponse `json:"fees"`
	Discounts       []PriceLineResponse `json:"discounts"`
	Taxes           []PriceLineResponse `json:"taxes"`
	SecurityDeposit int64               `json:"security_deposit"`
	Total           int64               `json:"total"`
	Currency        entity.Currency     `json:"currency"`
}

type CancellationResponse struct {
	CancelledBy      string    `json:"cancelled_by"`
	Reason           string    `json:"reason,omitempty"`
	CancelledAt      time.Time `json:"cancelled_at"`
	RefundPercentage int       `json:"refund_percentage"`
	RefundAmount     int64     `json:"refund_amount"`
	PenaltyAmount    int64     `json:"penalty_amount"`
}

type BookingResponse struct {
	ID            string                `json:"id"`
	Reference     string                `json:"reference"`
	RentalID      string                `json:"rental_id"`
	GuestID       string                `json:"guest_id"`
	Status        entity.BookingStatus  `json:"status"`
	CheckInDate   string                `json:"check_in_date"`
	CheckOutDate  string                `json:"check_out_date"`
	Nights        int                   `json:"nights"`
	Guests        entity.GuestCounts    `json:"guests"`
	Pricing       PricingResponse       `json:"pricing"`
	PaymentStatus entity.PaymentStatus  `json:"payment_status"`
	Cancellation  *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func priceLines(lines []entity.PriceLine) []PriceLineResponse {
	out := make([]PriceLineResponse, len(lines))
	for i, line := range lines {
		out[i] = PriceLineResponse{Name: line.Name, Amount: line.Amount.Amount}
	}
	return out
}

func PricingToResponse(p entity.BookingPricing) PricingResponse {
	return PricingResponse{
		BaseAmount:      p.BaseAmount.Amount,
		Nights:          p.Nights,
		Subtotal:        p.Subtotal.Amount,
		Fees:            priceLines(p.Fees),
		Discounts:       priceLines(p.Discounts),
		Taxes:           priceLines(p.Taxes),
		SecurityDeposit: p.SecurityDeposit.Amount,
		Total:           p.Total.Amount,
		Currency:        p.Currency,
	}
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		RentalID:      b.RentalID.String(),
		GuestID:       b.GuestID.String(),
		Status:        b.Status,
		CheckInDate:   b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  b.CheckOutDate.Format("2006-01-02"),
		Nights:        b.Range().Nights(),
		Guests:        b.Guests,
		Pricing:       PricingToResponse(b.Pricing),
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
	}

	if b.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledBy:      b.Cancellation.CancelledBy.String(),
			Reason:           b.Cancellation.Reason,
			CancelledAt:      b.Cancellation.CancelledAt,
			RefundPercentage: b.Cancellation.RefundPercentage,
			RefundAmount:     b.Cancellation.RefundAmount.Amount,
			PenaltyAmount:    b.Cancellation.PenaltyAmount.Amount,
		}
	}

	return resp
}
