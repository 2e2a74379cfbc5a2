package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/razorpay/razorpay-go"

	"lifeline/internal/config"
	"lifeline/pkg/logger"
)

type RazorpayProvider struct {
	client        *razorpay.Client
	webhookSecret string
	logger        *logger.Logger
}

func NewRazorpayProvider(cfg *config.RazorpayConfig, log *logger.Logger) *RazorpayProvider {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)

	return &RazorpayProvider{
		client:        client,
		webhookSecret: cfg.WebhookSecret,
		logger:        log,
	}
}

func (r *RazorpayProvider) Name() string {
	return "razorpay"
}

// CreateCheckoutSession creates a Razorpay payment link, which fills
// the same hosted-checkout role as a Stripe session.
func (r *RazorpayProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	amountMinor := int64(math.Round(req.Amount * 100))

	notes := map[string]interface{}{}
	for k, v := range req.Metadata {
		notes[k] = v
	}

	linkData := map[string]interface{}{
		"amount":      amountMinor,
		"currency":    req.Currency,
		"description": req.ProductName,
		"customer": map[string]interface{}{
			"email": req.CustomerEmail,
		},
		"callback_url":    req.SuccessURL,
		"callback_method": "get",
		"notes":           notes,
	}

	link, err := r.client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay payment link: %w", err)
	}

	id, _ := link["id"].(string)
	shortURL, _ := link["short_url"].(string)

	r.logger.WithFields(map[string]interface{}{
		"session_id": id,
		"amount":     amountMinor,
		"currency":   req.Currency,
	}).Info("Razorpay payment link created")

	return &CheckoutSession{
		ID:          id,
		URL:         shortURL,
		AmountMinor: amountMinor,
	}, nil
}

func (r *RazorpayProvider) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	expected := r.generateSignature(payload)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, ErrInvalidSignature
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			PaymentLink struct {
				Entity struct {
					ID    string            `json:"id"`
					Notes map[string]string `json:"notes"`
				} `json:"entity"`
			} `json:"payment_link"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	switch event.Event {
	case "payment_link.paid":
		return &WebhookEvent{
			Type:      EventCheckoutCompleted,
			SessionID: event.Payload.PaymentLink.Entity.ID,
			Metadata:  event.Payload.PaymentLink.Entity.Notes,
		}, nil
	case "payment_link.expired", "payment_link.cancelled":
		return &WebhookEvent{
			Type:      EventCheckoutExpired,
			SessionID: event.Payload.PaymentLink.Entity.ID,
			Metadata:  event.Payload.PaymentLink.Entity.Notes,
		}, nil
	default:
		return &WebhookEvent{Type: EventIgnored}, nil
	}
}

func (r *RazorpayProvider) generateSignature(payload []byte) string {
	h := hmac.New(sha256.New, []byte(r.webhookSecret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
