package payment

import (
	"fmt"

	"lifeline/internal/config"
	"lifeline/pkg/logger"
)

// NewProvider builds the configured checkout provider.
func NewProvider(cfg *config.PaymentConfig, log *logger.Logger) (Provider, error) {
	switch cfg.DefaultProvider {
	case "stripe":
		return NewStripeProvider(cfg.Stripe, log), nil
	case "razorpay":
		return NewRazorpayProvider(cfg.Razorpay, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.DefaultProvider)
	}
}
