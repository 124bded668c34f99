package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	application "estatehub/contexts/engagement/notification-service/application"
	"estatehub/contexts/engagement/notification-service/application/commands"
	"estatehub/contexts/engagement/notification-service/ports"
)

const defaultEmailRelayConsumer = "notification-service-email-relay-cg"

// EmailRelay mails every created notification to its recipient.
type EmailRelay struct {
	Subscriber    ports.EventSubscriber
	Recipients    ports.RecipientDirectory
	Mailer        ports.Mailer
	ConsumerGroup string
	Logger        *slog.Logger
}

func (r EmailRelay) Start(ctx context.Context) error {
	group := strings.TrimSpace(r.ConsumerGroup)
	if group == "" {
		group = defaultEmailRelayConsumer
	}
	return r.Subscriber.Subscribe(ctx, commands.TopicNotificationCreated, group, r.Handle)
}

func (r EmailRelay) Handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(r.Logger)

	var payload commands.NotificationCreatedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode notification.created payload: %w", err)
	}
	if strings.TrimSpace(payload.RecipientID) == "" {
		return fmt.Errorf("notification.created payload missing recipient_id")
	}

	address, err := r.Recipients.LookupEmail(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", payload.RecipientID, err)
	}
	if err := r.Mailer.Send(ctx, ports.Email{
		To:      address,
		Subject: emailSubject(payload.Type),
		Body:    payload.Message,
	}); err != nil {
		return fmt.Errorf("send notification email: %w", err)
	}

	logger.Info("notification email sent",
		"event", "notification_email_sent",
		"module", "engagement/notification-service",
		"layer", "worker",
		"event_id", event.EventID,
		"notification_id", payload.NotificationID,
		"recipient_id", payload.RecipientID,
	)
	return nil
}

func emailSubject(notificationType string) string {
	switch notificationType {
	case "property_approval":
		return "Property awaiting approval"
	case "contact_submission":
		return "New contact submission"
	default:
		return "Notification"
	}
}
