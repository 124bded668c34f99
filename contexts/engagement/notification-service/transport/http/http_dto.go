package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotificationDTO struct {
	NotificationID    string `json:"id"`
	RecipientID       string `json:"recipient"`
	Type              string `json:"type"`
	RelatedPropertyID string `json:"relatedProperty,omitempty"`
	RelatedContactID  string `json:"relatedContact,omitempty"`
	Message           string `json:"message"`
	IsRead            bool   `json:"isRead"`
	CreatedAt         string `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Items  []NotificationDTO `json:"items"`
	Unread int               `json:"unread"`
}

type NotificationResponse struct {
	Notification NotificationDTO `json:"notification"`
}
