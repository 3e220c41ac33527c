package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-capture-service/internal/config"
	"github.com/spec-kit/lead-capture-service/internal/events"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Webhook-Signature"

// WebhookService signs and forwards new-lead events to the configured
// endpoint. Delivery is fire-and-forget: failures are logged and never
// surfaced to the submitting client.
type WebhookService struct {
	dispatcher events.Dispatcher
	client     *resty.Client
	logger     *zap.Logger
	cfg        config.WebhookConfig
}

// NewWebhookService creates the relay.
func NewWebhookService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.WebhookConfig) *WebhookService {
	client := resty.New().SetTimeout(cfg.Timeout())
	return &WebhookService{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to lead events.
func (w *WebhookService) RegisterHandlers() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventLeadCreated, w.handleLeadCreated)
	w.dispatcher.Subscribe(events.EventLeadStatusChanged, w.logEvent)
	w.dispatcher.Subscribe(events.EventLeadDeleted, w.logEvent)
}

func (w *WebhookService) handleLeadCreated(_ context.Context, event events.Event) {
	w.logger.Info("lead created",
		zap.Int64("lead_id", event.LeadID),
		zap.String("event_id", event.ID))

	if !w.cfg.Enabled() {
		return
	}

	// Detached from the request: the submission response never waits on the
	// relay, and a dead endpoint only costs a log line.
	go w.deliver(event)
}

func (w *WebhookService) logEvent(_ context.Context, event events.Event) {
	w.logger.Info(string(event.Type),
		zap.Int64("lead_id", event.LeadID),
		zap.Any("payload", event.Payload))
}

func (w *WebhookService) deliver(event events.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("webhook payload marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout())
	defer cancel()

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(SignatureHeader, Sign(body, w.cfg.Secret)).
		SetBody(body).
		Post(w.cfg.URL)
	if err != nil {
		w.logger.Warn("webhook delivery failed",
			zap.Int64("lead_id", event.LeadID),
			zap.Error(err))
		return
	}
	if resp.IsError() {
		w.logger.Warn("webhook endpoint rejected event",
			zap.Int64("lead_id", event.LeadID),
			zap.Int("status", resp.StatusCode()))
		return
	}

	w.logger.Debug("webhook delivered",
		zap.Int64("lead_id", event.LeadID),
		zap.Int("status", resp.StatusCode()))
}

// Sign computes the hex HMAC-SHA256 signature of body under secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
