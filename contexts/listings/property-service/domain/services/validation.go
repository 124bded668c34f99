package services

import (
	"fmt"
	"math"
	"strings"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
)

// Fields is a partial listing payload. Nil pointers mean "not supplied".
type Fields struct {
	Title       *string
	Description *string
	Type        *string
	Price       *float64
	Location    *string
	Size        *float64
	SizeUnit    *string
	Bedrooms    *int
	Amenities   []string
	Status      *string
}

// HasStatus reports whether the payload asks for a status change.
func (f Fields) HasStatus() bool {
	return f.Status != nil && strings.TrimSpace(*f.Status) != ""
}

// Apply merges f onto base and validates the result. Status is left untouched;
// callers decide whether the actor may change it.
func Apply(base entities.Property, f Fields) (entities.Property, error) {
	next := base
	if f.Title != nil {
		next.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		next.Description = strings.TrimSpace(*f.Description)
	}
	if f.Type != nil {
		kind, ok := entities.ParsePropertyType(*f.Type)
		if !ok {
			return entities.Property{}, invalid("type must be one of House, Apartment, Land, Office")
		}
		next.Type = kind
	}
	if f.Price != nil {
		next.Price = *f.Price
	}
	if f.Location != nil {
		next.Location = strings.TrimSpace(*f.Location)
	}
	if f.Size != nil {
		next.Size = *f.Size
	}
	if f.SizeUnit != nil {
		unit, ok := entities.ParseSizeUnit(*f.SizeUnit)
		if !ok {
			return entities.Property{}, invalid("sizeUnit must be one of sqft, sqm, acres")
		}
		next.SizeUnit = unit
	}
	if f.Bedrooms != nil {
		bedrooms := *f.Bedrooms
		next.Bedrooms = &bedrooms
	}
	if f.Amenities != nil {
		amenities, err := normalizeAmenities(f.Amenities)
		if err != nil {
			return entities.Property{}, err
		}
		next.Amenities = amenities
	}
	if next.Type == entities.PropertyTypeLand {
		next.Bedrooms = nil
	}
	if err := Validate(next); err != nil {
		return entities.Property{}, err
	}
	return next, nil
}

// Validate checks the required-field rules of a complete listing.
func Validate(p entities.Property) error {
	switch {
	case p.Title == "":
		return invalid("title is required")
	case p.Description == "":
		return invalid("description is required")
	case p.Type == "":
		return invalid("type is required")
	case !positiveFinite(p.Price):
		return invalid("price must be a finite number greater than zero")
	case p.Location == "":
		return invalid("location is required")
	case !positiveFinite(p.Size):
		return invalid("size must be a finite number greater than zero")
	case p.SizeUnit == "":
		return invalid("sizeUnit is required")
	}
	if p.Type == entities.PropertyTypeLand {
		return nil
	}
	if p.Bedrooms == nil || *p.Bedrooms < 0 {
		return invalid("bedrooms is required unless type is Land")
	}
	if len(p.Amenities) == 0 {
		return invalid("at least one amenity is required unless type is Land")
	}
	return nil
}

// positiveFinite rejects NaN and infinities, which JSON cannot encode.
func positiveFinite(value float64) bool {
	return value > 0 && !math.IsInf(value, 0)
}

// SplitAmenities accepts form values that are either repeated or comma separated.
func SplitAmenities(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeAmenities(values []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range SplitAmenities(values) {
		amenity, ok := entities.CanonicalAmenity(value)
		if !ok {
			return nil, invalid(fmt.Sprintf("unknown amenity %q", value))
		}
		if _, dup := seen[amenity]; dup {
			continue
		}
		seen[amenity] = struct{}{}
		out = append(out, amenity)
	}
	return out, nil
}

func invalid(detail string) error {
	return fmt.Errorf("%w: %s", domainerrors.ErrInvalidProperty, detail)
}
