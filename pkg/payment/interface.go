package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrUnknownProvider  = errors.New("unknown payment provider")
)

// EventType is a provider-neutral webhook event classification.
type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.completed"
	EventCheckoutExpired   EventType = "checkout.expired"
	EventIgnored           EventType = "ignored"
)

type CheckoutRequest struct {
	Amount        float64           `json:"amount"` // major currency units
	Currency      string            `json:"currency"`
	ProductName   string            `json:"product_name"`
	ProductImage  string            `json:"product_image,omitempty"`
	CustomerEmail string            `json:"customer_email"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AmountMinor int64  `json:"amount_minor"`
}

type WebhookEvent struct {
	Type      EventType         `json:"type"`
	SessionID string            `json:"session_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Provider abstracts the hosted-checkout gateway used for appointment
// payments. Webhook payloads are verified against the provider's
// signing secret before being normalized into a WebhookEvent.
type Provider interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
