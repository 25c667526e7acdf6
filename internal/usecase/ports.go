package usecase

import (
	"context"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
)

// PaymentGateway is the outbound payment collaborator. Both calls are treated as
// asynchronous and retryable; the engine never implements them and never blocks
// calendar correctness on their success.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount entity.Money, bookingID uuid.UUID) error
	Refund(ctx context.Context, amount entity.Money, bookingID uuid.UUID, reason string) error
}

// EventPublisher hands domain events to the notification collaborator.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.DomainEvent)
}
