package entities

import (
	"strings"
	"time"
)

type PropertyStatus string

const (
	PropertyStatusPending PropertyStatus = "Pending"
	PropertyStatusActive  PropertyStatus = "Active"
	PropertyStatusSold    PropertyStatus = "Sold"
	PropertyStatusRented  PropertyStatus = "Rented"
)

// ParsePropertyStatus matches case-insensitively and returns the canonical spelling.
func ParsePropertyStatus(value string) (PropertyStatus, bool) {
	for _, status := range []PropertyStatus{
		PropertyStatusPending,
		PropertyStatusActive,
		PropertyStatusSold,
		PropertyStatusRented,
	} {
		if strings.EqualFold(strings.TrimSpace(value), string(status)) {
			return status, true
		}
	}
	return "", false
}

// Toggleable reports whether the status participates in the Pending/Active quick-toggle.
func (s PropertyStatus) Toggleable() bool {
	return s == PropertyStatusPending || s == PropertyStatusActive
}

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeLand      PropertyType = "Land"
	PropertyTypeOffice    PropertyType = "Office"
)

func ParsePropertyType(value string) (PropertyType, bool) {
	for _, kind := range []PropertyType{
		PropertyTypeHouse,
		PropertyTypeApartment,
		PropertyTypeLand,
		PropertyTypeOffice,
	} {
		if strings.EqualFold(strings.TrimSpace(value), string(kind)) {
			return kind, true
		}
	}
	return "", false
}

type SizeUnit string

const (
	SizeUnitSqft  SizeUnit = "sqft"
	SizeUnitSqm   SizeUnit = "sqm"
	SizeUnitAcres SizeUnit = "acres"
)

func ParseSizeUnit(value string) (SizeUnit, bool) {
	switch SizeUnit(strings.ToLower(strings.TrimSpace(value))) {
	case SizeUnitSqft:
		return SizeUnitSqft, true
	case SizeUnitSqm:
		return SizeUnitSqm, true
	case SizeUnitAcres:
		return SizeUnitAcres, true
	default:
		return "", false
	}
}

// Amenities is the closed catalogue a listing may advertise.
var Amenities = []string{
	"Swimming Pool",
	"Gym",
	"Parking",
	"Security",
	"Garden",
	"Elevator",
	"Air Conditioning",
	"Heating",
	"Internet",
	"Furnished",
	"Balcony",
	"Storage",
}

// CanonicalAmenity returns the catalogue spelling of value.
func CanonicalAmenity(value string) (string, bool) {
	for _, amenity := range Amenities {
		if strings.EqualFold(strings.TrimSpace(value), amenity) {
			return amenity, true
		}
	}
	return "", false
}

type Property struct {
	PropertyID  string
	OwnerID     string
	Title       string
	Description string
	Type        PropertyType
	Price       float64
	Location    string
	Size        float64
	SizeUnit    SizeUnit
	Bedrooms    *int
	Amenities   []string
	Images      []string
	Status      PropertyStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Property) OwnedBy() string {
	return p.OwnerID
}

// OwnerContact is the public contact card shown on a listing page.
type OwnerContact struct {
	FullName string
	Email    string
	Phone    string
}

type PropertyDetail struct {
	Property Property
	Owner    *OwnerContact
}

// Image is a stored upload addressed by an opaque reference.
type Image struct {
	Ref         string
	Filename    string
	ContentType string
	Data        []byte
}
