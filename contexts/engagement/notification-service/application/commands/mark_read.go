package commands

import (
	"context"
	"log/slog"
	"strings"

	application "estatehub/contexts/engagement/notification-service/application"
	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"
	"estatehub/contexts/engagement/notification-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
)

type MarkReadCommand struct {
	Principal      policyentities.Principal
	NotificationID string
}

type MarkReadUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Execute marks a notification read. Only its admin recipient may do so; other
// callers see NotFound so ids of foreign notifications are not disclosed.
func (uc MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (entities.Notification, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Principal.Authenticated() {
		return entities.Notification{}, domainerrors.ErrUnauthenticated
	}
	item, err := uc.Repository.GetNotification(ctx, strings.TrimSpace(cmd.NotificationID))
	if err != nil {
		return entities.Notification{}, err
	}
	if !policy.CanMutate(cmd.Principal, item.RecipientID, policyentities.ActionNotificationRead) {
		return entities.Notification{}, domainerrors.ErrForbidden
	}
	if item.RecipientID != cmd.Principal.ID {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	if item.IsRead {
		return item, nil
	}
	if err := uc.Repository.MarkRead(ctx, item.NotificationID); err != nil {
		return entities.Notification{}, err
	}
	item.IsRead = true

	logger.Info("notification marked read",
		"event", "notification_marked_read",
		"module", moduleName,
		"layer", "application",
		"notification_id", item.NotificationID,
		"recipient_id", item.RecipientID,
	)
	return item, nil
}
