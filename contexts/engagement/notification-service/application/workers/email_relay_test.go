package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"estatehub/contexts/engagement/notification-service/application/commands"
	"estatehub/contexts/engagement/notification-service/ports"
	contractsv1 "estatehub/contracts/gen/events/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directory map[string]string

func (d directory) LookupEmail(_ context.Context, userID string) (string, error) {
	email, ok := d[userID]
	if !ok {
		return "", errors.New("unknown user")
	}
	return email, nil
}

type outbox struct {
	sent []ports.Email
}

func (o *outbox) Send(_ context.Context, email ports.Email) error {
	o.sent = append(o.sent, email)
	return nil
}

type directSubscriber struct {
	topic   string
	handler func(context.Context, ports.EventEnvelope) error
}

func (s *directSubscriber) Subscribe(_ context.Context, topic string, _ string, handler func(context.Context, ports.EventEnvelope) error) error {
	s.topic = topic
	s.handler = handler
	return nil
}

func notificationEvent(t *testing.T, recipient string) ports.EventEnvelope {
	t.Helper()
	envelope, err := contractsv1.NewEnvelope("n1", commands.TopicNotificationCreated, "notification-service", "recipient_id", recipient, time.Now(), commands.NotificationCreatedPayload{
		NotificationID: "n1",
		RecipientID:    recipient,
		Type:           "property_approval",
		Message:        `A new property "Loft" requires your approval.`,
	})
	require.NoError(t, err)
	return envelope
}

func TestEmailRelayMailsRecipient(t *testing.T) {
	mailer := &outbox{}
	subscriber := &directSubscriber{}
	relay := EmailRelay{
		Subscriber: subscriber,
		Recipients: directory{"a1": "admin@example.com"},
		Mailer:     mailer,
	}
	require.NoError(t, relay.Start(context.Background()))
	assert.Equal(t, commands.TopicNotificationCreated, subscriber.topic)

	require.NoError(t, subscriber.handler(context.Background(), notificationEvent(t, "a1")))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "admin@example.com", mailer.sent[0].To)
	assert.Equal(t, "Property awaiting approval", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "Loft")
}

func TestEmailRelayUnknownRecipient(t *testing.T) {
	mailer := &outbox{}
	relay := EmailRelay{Recipients: directory{}, Mailer: mailer}

	err := relay.Handle(context.Background(), notificationEvent(t, "ghost"))
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}
