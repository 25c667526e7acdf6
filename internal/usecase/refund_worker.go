package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type refundJob struct {
	BookingID uuid.UUID
	Amount    entity.Money
	Reason    string
	Attempts  int
}

// RefundWorker issues refunds to the payment collaborator out of band. A
// cancellation never blocks on, and is never rolled back by, a failed refund
// call; failed jobs are re-queued with backoff until the attempt budget runs out.
type RefundWorker struct {
	gateway     PaymentGateway
	log         *zap.Logger
	jobs        chan refundJob
	maxAttempts int
	backoff     time.Duration
}

func NewRefundWorker(gateway PaymentGateway, log *zap.Logger) *RefundWorker {
	return &RefundWorker{
		gateway:     gateway,
		log:         log.With(zap.String("service", "refund_worker")),
		jobs:        make(chan refundJob, 256),
		maxAttempts: 5,
		backoff:     30 * time.Second,
	}
}

// Enqueue is fire-and-forget. A full queue is logged and dropped rather than
// blocking the cancellation path; the job is recoverable from the booking's
// cancellation record.
func (w *RefundWorker) Enqueue(bookingID uuid.UUID, amount entity.Money, reason string) {
	select {
	case w.jobs <- refundJob{BookingID: bookingID, Amount: amount, Reason: reason}:
	default:
		w.log.Error("Refund queue full, dropping job",
			zap.String("booking_id", bookingID.String()),
			zap.Int64("amount", amount.Amount),
		)
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *RefundWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-w.jobs:
				w.process(ctx, job)
			}
		}
	}()
}

func (w *RefundWorker) process(ctx context.Context, job refundJob) {
	err := w.gateway.Refund(ctx, job.Amount, job.BookingID, job.Reason)
	if err == nil {
		w.log.Info("Refund issued",
			zap.String("booking_id", job.BookingID.String()),
			zap.Int64("amount", job.Amount.Amount),
			zap.String("currency", string(job.Amount.Currency)),
		)
		return
	}

	job.Attempts++
	if job.Attempts >= w.maxAttempts {
		w.log.Error("Refund failed permanently",
			zap.Error(err),
			zap.String("booking_id", job.BookingID.String()),
			zap.Int("attempts", job.Attempts),
		)
		return
	}

	w.log.Warn("Refund failed, will retry",
		zap.Error(err),
		zap.String("booking_id", job.BookingID.String()),
		zap.Int("attempts", job.Attempts),
	)

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(w.backoff * time.Duration(job.Attempts)):
			select {
			case w.jobs <- job:
			default:
				w.log.Error("Refund queue full on retry", zap.String("booking_id", job.BookingID.String()))
			}
		}
	}()
}
