package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"estatehub/contexts/engagement/notification-service/application/commands"
	"estatehub/contexts/engagement/notification-service/application/queries"
	"estatehub/contexts/engagement/notification-service/domain/entities"
	httptransport "estatehub/contexts/engagement/notification-service/transport/http"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type Handler struct {
	MarkRead commands.MarkReadUseCase
	Queries  queries.QueryUseCase
	Logger   *slog.Logger
}

// ListNotificationsHandler godoc
// @Summary List own notifications (admin)
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListNotificationsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /notifications [get]
func (h Handler) ListNotificationsHandler(ctx context.Context, principal policyentities.Principal) (httptransport.ListNotificationsResponse, error) {
	items, err := h.Queries.List(ctx, principal)
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	resp := httptransport.ListNotificationsResponse{Items: make([]httptransport.NotificationDTO, 0, len(items))}
	for _, item := range items {
		if !item.IsRead {
			resp.Unread++
		}
		resp.Items = append(resp.Items, mapNotification(item))
	}
	return resp, nil
}

// MarkReadHandler godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notification_id path string true "Notification id"
// @Success 200 {object} httptransport.NotificationResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /notifications/{notification_id}/read [patch]
func (h Handler) MarkReadHandler(
	ctx context.Context,
	principal policyentities.Principal,
	notificationID string,
) (httptransport.NotificationResponse, error) {
	item, err := h.MarkRead.Execute(ctx, commands.MarkReadCommand{
		Principal:      principal,
		NotificationID: notificationID,
	})
	if err != nil {
		return httptransport.NotificationResponse{}, err
	}
	return httptransport.NotificationResponse{Notification: mapNotification(item)}, nil
}

func mapNotification(item entities.Notification) httptransport.NotificationDTO {
	return httptransport.NotificationDTO{
		NotificationID:    item.NotificationID,
		RecipientID:       item.RecipientID,
		Type:              string(item.Type),
		RelatedPropertyID: item.RelatedPropertyID,
		RelatedContactID:  item.RelatedContactID,
		Message:           item.Message,
		IsRead:            item.IsRead,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
	}
}
