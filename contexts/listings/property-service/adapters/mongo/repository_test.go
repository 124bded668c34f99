package mongoadapter

import (
	"testing"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPropertyDocumentRoundTrip(t *testing.T) {
	bedrooms := 3
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	item := entities.Property{
		PropertyID:  "p1",
		OwnerID:     "s1",
		Title:       "Garden house",
		Description: "Quiet street",
		Type:        entities.PropertyTypeHouse,
		Price:       250000,
		Location:    "Lisbon",
		Size:        140.5,
		SizeUnit:    entities.SizeUnitSqm,
		Bedrooms:    &bedrooms,
		Amenities:   []string{"garden", "garage"},
		Images:      []string{"66f1c2a9e4b0a1b2c3d4e5f6"},
		Status:      entities.PropertyStatusActive,
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}

	raw, err := bson.Marshal(documentFromEntity(item))
	require.NoError(t, err)
	assert.Equal(t, "p1", bson.Raw(raw).Lookup("_id").StringValue())
	assert.Equal(t, "Active", bson.Raw(raw).Lookup("status").StringValue())
	assert.Equal(t, int32(3), bson.Raw(raw).Lookup("bedrooms").Int32())

	var decoded propertyDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, item, decoded.toEntity())
}

func TestPropertyDocumentOmitsBedroomsAndKeepsEmptyLists(t *testing.T) {
	item := entities.Property{
		PropertyID: " p2 ",
		OwnerID:    "s1",
		Type:       entities.PropertyTypeLand,
		Price:      90000,
		Size:       2,
		SizeUnit:   entities.SizeUnitAcres,
		Status:     entities.PropertyStatusPending,
	}

	doc := documentFromEntity(item)
	assert.Equal(t, "p2", doc.PropertyID)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	_, err = bson.Raw(raw).LookupErr("bedrooms")
	assert.Error(t, err)
	amenities, err := bson.Raw(raw).LookupErr("amenities")
	require.NoError(t, err)
	assert.Equal(t, bson.TypeArray, amenities.Type)

	var decoded propertyDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	entity := decoded.toEntity()
	assert.Nil(t, entity.Bedrooms)
	assert.Empty(t, entity.Amenities)
	assert.Empty(t, entity.Images)
}
