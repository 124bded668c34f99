package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	application "estatehub/contexts/engagement/contact-service/application"
	"estatehub/contexts/engagement/contact-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/contact-service/domain/errors"
	"estatehub/contexts/engagement/contact-service/ports"
)

const moduleName = "engagement/contact-service"

type SubmitContactCommand struct {
	Name    string
	Email   string
	Message string
}

type SubmitContactUseCase struct {
	Repository ports.Repository
	Notifier   ports.AdminNotifier
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute stores the submission, then notifies admins. A notifier failure is
// logged and does not fail the submission.
func (uc SubmitContactUseCase) Execute(ctx context.Context, cmd SubmitContactCommand) (entities.Contact, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	email := strings.TrimSpace(cmd.Email)
	message := strings.TrimSpace(cmd.Message)
	switch {
	case name == "":
		return entities.Contact{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidContact)
	case email == "":
		return entities.Contact{}, fmt.Errorf("%w: email is required", domainerrors.ErrInvalidContact)
	case message == "":
		return entities.Contact{}, fmt.Errorf("%w: message is required", domainerrors.ErrInvalidContact)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return entities.Contact{}, fmt.Errorf("%w: email must be a valid address", domainerrors.ErrInvalidContact)
	}

	contactID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Contact{}, err
	}
	contact := entities.Contact{
		ContactID: contactID,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: uc.Clock.Now().UTC(),
	}
	if err := uc.Repository.CreateContact(ctx, contact); err != nil {
		return entities.Contact{}, err
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyContactSubmitted(ctx, contact); err != nil {
			logger.Warn("admin notification failed",
				"event", "contact_admin_notify_failed",
				"module", moduleName,
				"layer", "application",
				"contact_id", contact.ContactID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("contact submitted",
		"event", "contact_submitted",
		"module", moduleName,
		"layer", "application",
		"contact_id", contact.ContactID,
	)
	return contact, nil
}
