package services

import (
	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
)

// Toggle validates a quick-toggle move. Only Pending and Active participate,
// on both sides of the transition.
func Toggle(current entities.PropertyStatus, requested string) (entities.PropertyStatus, error) {
	next, ok := entities.ParsePropertyStatus(requested)
	if !ok || !next.Toggleable() {
		return "", domainerrors.ErrInvalidStatus
	}
	if !current.Toggleable() {
		return "", domainerrors.ErrInvalidStatus
	}
	return next, nil
}

// InitialStatus returns Pending unless an explicit status is supplied by an actor
// allowed to choose it.
func InitialStatus(requested *string, mayChoose bool) (entities.PropertyStatus, error) {
	if requested == nil || *requested == "" || !mayChoose {
		return entities.PropertyStatusPending, nil
	}
	status, ok := entities.ParsePropertyStatus(*requested)
	if !ok {
		return "", domainerrors.ErrInvalidStatus
	}
	return status, nil
}

// FullEditStatus resolves a status carried by an admin full edit. Any enum value is allowed.
func FullEditStatus(requested string) (entities.PropertyStatus, error) {
	status, ok := entities.ParsePropertyStatus(requested)
	if !ok {
		return "", domainerrors.ErrInvalidStatus
	}
	return status, nil
}

type Summary struct {
	Total   int
	Pending int
	Active  int
	Sold    int
	Rented  int
}

func Summarize(items []entities.Property) Summary {
	summary := Summary{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case entities.PropertyStatusPending:
			summary.Pending++
		case entities.PropertyStatusActive:
			summary.Active++
		case entities.PropertyStatusSold:
			summary.Sold++
		case entities.PropertyStatusRented:
			summary.Rented++
		}
	}
	return summary
}
