package sms

import (
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	"lifeline/internal/config"
	"lifeline/pkg/logger"
)

// Sender delivers text messages to patients and doctors.
type Sender interface {
	Send(to, body string) error
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	enabled    bool
	logger     *logger.Logger
}

func NewTwilioSender(cfg *config.SMSConfig, log *logger.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{
		client:     client,
		fromNumber: cfg.FromNumber,
		enabled:    cfg.Enabled,
		logger:     log,
	}
}

func (t *TwilioSender) Send(to, body string) error {
	if !t.enabled {
		t.logger.WithField("to", to).Debug("SMS disabled, skipping send")
		return nil
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	t.logger.WithFields(map[string]interface{}{
		"to":  to,
		"sid": derefString(resp.Sid),
	}).Info("SMS sent")

	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
