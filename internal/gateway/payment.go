package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// httpPaymentGateway talks to the marketplace payment processor over its REST
// API. Amounts go over the wire in minor units, same as they are stored.
type httpPaymentGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewPaymentGateway(cfg utils.GatewayConfig, log *zap.Logger) usecase.PaymentGateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpPaymentGateway{
		baseURL: cfg.PaymentBaseURL,
		apiKey:  cfg.PaymentAPIKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("service", "payment_gateway")),
	}
}

func (g *httpPaymentGateway) Authorize(ctx context.Context, amount entity.Money, bookingID uuid.UUID) error {
	body := map[string]any{
		"external_id": bookingID.String(),
		"amount":      amount.Amount,
		"currency":    string(amount.Currency),
	}
	if err := g.post(ctx, "/v1/authorizations", body); err != nil {
		return fmt.Errorf("authorize payment for booking %s: %w", bookingID.String(), err)
	}

	g.log.Info("Payment authorization requested",
		zap.String("booking_id", bookingID.String()),
		zap.Int64("amount", amount.Amount),
	)
	return nil
}

func (g *httpPaymentGateway) Refund(ctx context.Context, amount entity.Money, bookingID uuid.UUID, reason string) error {
	body := map[string]any{
		"external_id": bookingID.String(),
		"amount":      amount.Amount,
		"currency":    string(amount.Currency),
		"reason":      reason,
	}
	if err := g.post(ctx, "/v1/refunds", body); err != nil {
		return fmt.Errorf("refund payment for booking %s: %w", bookingID.String(), err)
	}

	g.log.Info("Refund requested",
		zap.String("booking_id", bookingID.String()),
		zap.Int64("amount", amount.Amount),
	)
	return nil
}

func (g *httpPaymentGateway) post(ctx context.Context, path string, body map[string]any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("payment processor returned %s", resp.Status)
	}
	return nil
}
