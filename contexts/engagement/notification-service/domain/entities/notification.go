package entities

import (
	"fmt"
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationTypePropertyApproval  NotificationType = "property_approval"
	NotificationTypeContactSubmission NotificationType = "contact_submission"
)

type Notification struct {
	NotificationID    string
	RecipientID       string
	Type              NotificationType
	RelatedPropertyID string
	RelatedContactID  string
	Message           string
	IsRead            bool
	CreatedAt         time.Time
}

// Subject is the record a fan-out is about.
type Subject struct {
	Type  NotificationType
	ID    string
	Label string
}

func PropertySubject(propertyID, title string) Subject {
	return Subject{Type: NotificationTypePropertyApproval, ID: propertyID, Label: title}
}

func ContactSubject(contactID, name string) Subject {
	return Subject{Type: NotificationTypeContactSubmission, ID: contactID, Label: name}
}

// Valid reports whether the subject names a known type and a record id.
func (s Subject) Valid() bool {
	if strings.TrimSpace(s.ID) == "" {
		return false
	}
	return s.Type == NotificationTypePropertyApproval || s.Type == NotificationTypeContactSubmission
}

// Message renders the admin-facing text for the subject.
func (s Subject) Message() string {
	switch s.Type {
	case NotificationTypePropertyApproval:
		return fmt.Sprintf("A new property \"%s\" requires your approval.", s.Label)
	case NotificationTypeContactSubmission:
		return fmt.Sprintf("New contact submission from %s", s.Label)
	default:
		return s.Label
	}
}

// NewNotification builds the record for one recipient. Exactly one related id is set,
// matching the subject type.
func NewNotification(id, recipientID string, subject Subject, createdAt time.Time) Notification {
	item := Notification{
		NotificationID: id,
		RecipientID:    recipientID,
		Type:           subject.Type,
		Message:        subject.Message(),
		CreatedAt:      createdAt,
	}
	if subject.Type == NotificationTypePropertyApproval {
		item.RelatedPropertyID = subject.ID
	} else {
		item.RelatedContactID = subject.ID
	}
	return item
}
