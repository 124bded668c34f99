package entities

import "time"

type Contact struct {
	ContactID string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
