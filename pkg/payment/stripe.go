package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"lifeline/internal/config"
	"lifeline/pkg/logger"
)

type StripeProvider struct {
	webhookSecret string
	logger        *logger.Logger
}

func NewStripeProvider(cfg *config.StripeConfig, log *logger.Logger) *StripeProvider {
	stripe.Key = cfg.SecretKey

	return &StripeProvider{
		webhookSecret: cfg.WebhookSecret,
		logger:        log,
	}
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	amountMinor := int64(math.Round(req.Amount * 100))

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ProductName),
	}
	if req.ProductImage != "" {
		productData.Images = stripe.StringSlice([]string{req.ProductImage})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(req.Currency),
					UnitAmount:  stripe.Int64(amountMinor),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"amount":     amountMinor,
		"currency":   req.Currency,
	}).Info("Stripe checkout session created")

	return &CheckoutSession{
		ID:          sess.ID,
		URL:         sess.URL,
		AmountMinor: amountMinor,
	}, nil
}

func (s *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session payload: %w", err)
		}

		eventType := EventCheckoutCompleted
		if event.Type == "checkout.session.expired" {
			eventType = EventCheckoutExpired
		}

		return &WebhookEvent{
			Type:      eventType,
			SessionID: sess.ID,
			Metadata:  sess.Metadata,
		}, nil
	default:
		return &WebhookEvent{Type: EventIgnored}, nil
	}
}
