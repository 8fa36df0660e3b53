// Package mail publishes mail events to the broker consumed by the mail service.
package mail

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"jobboard/config"
	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

// Mail event kinds understood by the mail service.
const (
	mailKindVerification  = "verification"
	mailKindPasswordReset = "password_reset"
)

// mailEvent is the wire format published to the mail topic. The raw token
// rides in the event so the mail service can build the link; it is never
// logged here.
type mailEvent struct {
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// kafkaMailer implements service.Mailer by producing events to Kafka.
// Actual rendering and SMTP delivery happen in the mail service consuming
// the topic.
type kafkaMailer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewKafkaMailer is the constructor for kafkaMailer.
func NewKafkaMailer(params Params) (service.Mailer, error) {
	if params.Config.Mail == nil || params.Config.Mail.Broker == "" || params.Config.Mail.Topic == "" {
		return nil, errors.New("mail broker and topic must be provided")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(params.Config.Mail.Broker),
		Topic:        params.Config.Mail.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return writer.Close()
		},
	})

	return &kafkaMailer{
		writer: writer,
		logger: params.Logger,
	}, nil
}

// SendVerificationMail publishes an email verification event.
func (m *kafkaMailer) SendVerificationMail(ctx context.Context, email, token string, expiresAt time.Time) error {
	return m.publish(ctx, mailEvent{
		Kind:      mailKindVerification,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// SendPasswordResetMail publishes a password reset event.
func (m *kafkaMailer) SendPasswordResetMail(ctx context.Context, email, token string, expiresAt time.Time) error {
	return m.publish(ctx, mailEvent{
		Kind:      mailKindPasswordReset,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (m *kafkaMailer) publish(ctx context.Context, event mailEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal mail event")
	}

	// Key by email so events for the same address stay ordered per partition.
	message := kafka.Message{
		Key:   []byte(event.Email),
		Value: payload,
	}

	// Carry the request id so the mail service's logs correlate with ours.
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		message.Headers = append(message.Headers, kafka.Header{
			Key:   "request-id",
			Value: []byte(requestID),
		})
	}

	err = m.writer.WriteMessages(ctx, message)
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s mail event", event.Kind)
	}

	m.logger.Debug("Mail event published", slog.String("kind", event.Kind))

	return nil
}
