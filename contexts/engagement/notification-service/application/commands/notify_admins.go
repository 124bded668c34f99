package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	application "estatehub/contexts/engagement/notification-service/application"
	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"
	"estatehub/contexts/engagement/notification-service/ports"
	contractsv1 "estatehub/contracts/gen/events/v1"

	"golang.org/x/sync/errgroup"
)

const (
	TopicNotificationCreated = "notification.created"

	moduleName         = "engagement/notification-service"
	defaultConcurrency = 4
)

type NotifyAdminsCommand struct {
	Subject entities.Subject
}

// FanoutResult counts the per-admin writes of one fan-out.
type FanoutResult struct {
	Created []entities.Notification
	Failed  int
}

type NotifyAdminsUseCase struct {
	Repository ports.Repository
	Admins     ports.AdminDirectory
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	// Concurrency bounds parallel writes; <= 0 uses a small default.
	Concurrency int
	Logger      *slog.Logger
}

// Execute writes one notification per admin. The returned error joins every
// per-admin failure; notifications written before a failure are kept.
func (uc NotifyAdminsUseCase) Execute(ctx context.Context, cmd NotifyAdminsCommand) (FanoutResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Subject.Valid() {
		return FanoutResult{}, domainerrors.ErrInvalidSubject
	}
	adminIDs, err := uc.Admins.ListAdminIDs(ctx)
	if err != nil {
		return FanoutResult{}, fmt.Errorf("list admins: %w", err)
	}

	var (
		mu     sync.Mutex
		result FanoutResult
		errs   []error
	)
	now := uc.Clock.Now().UTC()
	group := errgroup.Group{}
	group.SetLimit(uc.concurrency())
	for _, adminID := range adminIDs {
		group.Go(func() error {
			item, err := uc.notifyOne(ctx, adminID, cmd.Subject, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				errs = append(errs, fmt.Errorf("notify admin %s: %w", adminID, err))
				return nil
			}
			result.Created = append(result.Created, item)
			return nil
		})
	}
	_ = group.Wait()

	for _, item := range result.Created {
		uc.publish(ctx, logger, item)
	}

	logger.Info("admin fan-out finished",
		"event", "notification_admin_fanout",
		"module", moduleName,
		"layer", "application",
		"subject_type", string(cmd.Subject.Type),
		"subject_id", cmd.Subject.ID,
		"admins", len(adminIDs),
		"created", len(result.Created),
		"failed", result.Failed,
	)
	return result, errors.Join(errs...)
}

func (uc NotifyAdminsUseCase) notifyOne(
	ctx context.Context,
	adminID string,
	subject entities.Subject,
	now time.Time,
) (entities.Notification, error) {
	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Notification{}, err
	}
	item := entities.NewNotification(id, adminID, subject, now)
	if err := uc.Repository.CreateNotification(ctx, item); err != nil {
		return entities.Notification{}, err
	}
	return item, nil
}

func (uc NotifyAdminsUseCase) publish(ctx context.Context, logger *slog.Logger, item entities.Notification) {
	if uc.Publisher == nil {
		return
	}
	envelope, err := contractsv1.NewEnvelope(
		item.NotificationID,
		TopicNotificationCreated,
		"notification-service",
		"recipient_id",
		item.RecipientID,
		item.CreatedAt,
		NotificationCreatedPayload{
			NotificationID: item.NotificationID,
			RecipientID:    item.RecipientID,
			Type:           string(item.Type),
			Message:        item.Message,
		},
	)
	if err == nil {
		err = uc.Publisher.Publish(ctx, TopicNotificationCreated, envelope)
	}
	if err != nil {
		logger.Warn("notification event publish failed",
			"event", "notification_publish_failed",
			"module", moduleName,
			"layer", "application",
			"notification_id", item.NotificationID,
			"error", err.Error(),
		)
	}
}

func (uc NotifyAdminsUseCase) concurrency() int {
	if uc.Concurrency <= 0 {
		return defaultConcurrency
	}
	return uc.Concurrency
}

// NotificationCreatedPayload is the data of a notification.created event.
type NotificationCreatedPayload struct {
	NotificationID string `json:"notification_id"`
	RecipientID    string `json:"recipient_id"`
	Type           string `json:"type"`
	Message        string `json:"message"`
}
