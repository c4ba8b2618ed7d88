package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Channel selects the delivery network.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Message is one outbound text.
type Message struct {
	To      string  `json:"to"`
	Body    string  `json:"body"`
	Channel Channel `json:"channel"`
}

// Sender delivers a message and returns the provider reference.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) (string, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("outbound message", slog.String("to", msg.To), slog.String("channel", string(msg.Channel)), slog.Int("length", len(msg.Body)))
	return "", nil
}

// TwilioConfig carries account credentials and sender numbers.
type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	FromNumber     string
	WhatsAppNumber string
}

// messageAPI is the subset of the Twilio client used here.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender delivers through the Twilio Messaging API.
type TwilioSender struct {
	api    messageAPI
	cfg    TwilioConfig
	logger *slog.Logger
}

// NewTwilioSender builds a sender with a REST client for cfg.
func NewTwilioSender(cfg TwilioConfig, logger *slog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg, logger)
}

func newTwilioSender(api messageAPI, cfg TwilioConfig, logger *slog.Logger) *TwilioSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &TwilioSender{api: api, cfg: cfg, logger: logger}
}

// Send posts the message. WhatsApp messages use the whatsapp: address prefix on both ends.
func (s *TwilioSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if msg.To == "" || msg.Body == "" {
		return "", errors.New("notify: recipient and body are required")
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(msg.Body)
	if msg.Channel == ChannelWhatsApp {
		if s.cfg.WhatsAppNumber == "" {
			return "", errors.New("notify: whatsapp sender number not configured")
		}
		params.SetTo("whatsapp:" + msg.To)
		params.SetFrom("whatsapp:" + s.cfg.WhatsAppNumber)
	} else {
		params.SetTo(msg.To)
		params.SetFrom(s.cfg.FromNumber)
	}

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logger.Warn("twilio send failed", slog.String("channel", string(msg.Channel)), slog.Any("error", err))
		return "", fmt.Errorf("notify: twilio: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
