package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Calendar CalendarService
	Booking  BookingService
	Refunds  *RefundWorker
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	payments PaymentGateway,
	events EventPublisher,
	log *zap.Logger,
) *Service {
	calendar := NewCalendarService(repo.Calendar, events, log)
	availability := NewAvailabilityChecker(calendar, config.Booking.DefaultAdvanceNoticeHours, log)
	pricing := NewPricingEngine(config.Pricing.TaxRatePercent, log)
	refunds := NewRefundWorker(payments, log)

	return &Service{
		Calendar: calendar,
		Booking:  NewBookingService(repo, calendar, availability, pricing, payments, refunds, events, log),
		Refunds:  refunds,
	}
}
