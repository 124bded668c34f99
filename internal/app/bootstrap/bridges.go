package bootstrap

import (
	"context"

	contactentities "estatehub/contexts/engagement/contact-service/domain/entities"
	notificationcommands "estatehub/contexts/engagement/notification-service/application/commands"
	notificationentities "estatehub/contexts/engagement/notification-service/domain/entities"
	accountports "estatehub/contexts/identity-access/account-service/ports"
	propertyentities "estatehub/contexts/listings/property-service/domain/entities"
)

// Bridges adapt one context's use cases to another context's ports.

type propertyNotifier struct {
	notify notificationcommands.NotifyAdminsUseCase
}

func (n propertyNotifier) NotifyPropertySubmitted(ctx context.Context, property propertyentities.Property) error {
	_, err := n.notify.Execute(ctx, notificationcommands.NotifyAdminsCommand{
		Subject: notificationentities.PropertySubject(property.PropertyID, property.Title),
	})
	return err
}

type contactNotifier struct {
	notify notificationcommands.NotifyAdminsUseCase
}

func (n contactNotifier) NotifyContactSubmitted(ctx context.Context, contact contactentities.Contact) error {
	_, err := n.notify.Execute(ctx, notificationcommands.NotifyAdminsCommand{
		Subject: notificationentities.ContactSubject(contact.ContactID, contact.Name),
	})
	return err
}

type ownerDirectory struct {
	accounts accountports.Repository
}

func (d ownerDirectory) LookupOwner(ctx context.Context, ownerID string) (propertyentities.OwnerContact, error) {
	user, err := d.accounts.GetUser(ctx, ownerID)
	if err != nil {
		return propertyentities.OwnerContact{}, err
	}
	return propertyentities.OwnerContact{
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	}, nil
}

type recipientDirectory struct {
	accounts accountports.Repository
}

func (d recipientDirectory) LookupEmail(ctx context.Context, userID string) (string, error) {
	user, err := d.accounts.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
