package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// webhookPublisher forwards domain events to the notification collaborator as
// JSON webhooks. Delivery is best effort: a failed POST is logged and dropped,
// never bubbled back into the operation that produced the event. With no
// webhook URL configured events are only logged, which is enough for dev.
type webhookPublisher struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewEventPublisher(cfg utils.GatewayConfig, log *zap.Logger) usecase.EventPublisher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &webhookPublisher{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: timeout},
		log:    log.With(zap.String("service", "event_publisher")),
	}
}

type eventEnvelope struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

func (p *webhookPublisher) Publish(ctx context.Context, event entity.DomainEvent) {
	p.log.Info("Domain event",
		zap.String("event", event.EventName()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	)

	if p.url == "" {
		return
	}

	envelope := eventEnvelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("Failed to encode event", zap.Error(err), zap.String("event", event.EventName()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(b))
	if err != nil {
		p.log.Error("Failed to build webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("Webhook delivery failed",
			zap.Error(err),
			zap.String("event", event.EventName()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		p.log.Warn("Webhook rejected",
			zap.String("event", event.EventName()),
			zap.String("status", resp.Status),
		)
	}
}
