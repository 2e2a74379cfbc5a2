package config

import "lifeline/internal/utils"

type PaymentConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	Stripe          *StripeConfig   `yaml:"stripe"`
	Razorpay        *RazorpayConfig `yaml:"razorpay"`
	Currency        string          `yaml:"currency"`
	SuccessURL      string          `yaml:"success_url"`
	CancelURL       string          `yaml:"cancel_url"`
	PremiumPrice    float64         `yaml:"premium_price"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

type RazorpayConfig struct {
	KeyID         string `yaml:"key_id"`
	KeySecret     string `yaml:"key_secret"`
	WebhookSecret string `yaml:"webhook_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	clientURL := getEnv("CLIENT_SITE_URL", "http://localhost:5173")

	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", "stripe"),
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Razorpay: &RazorpayConfig{
			KeyID:         getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		Currency:     getEnv("PAYMENT_CURRENCY", "inr"),
		SuccessURL:   getEnv("PAYMENT_SUCCESS_URL", clientURL+"/checkout-success"),
		CancelURL:    getEnv("PAYMENT_CANCEL_URL", clientURL),
		PremiumPrice: getEnvAsFloat64("PREMIUM_UPGRADE_PRICE", utils.PremiumUpgradePrice),
	}
}
