package propertyservice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	"estatehub/contexts/listings/property-service/application/commands"
	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	httptransport "estatehub/contexts/listings/property-service/transport/http"
	contractsv1 "estatehub/contracts/gen/events/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []entities.Property
	err   error
}

func (n *recordingNotifier) NotifyPropertySubmitted(_ context.Context, property entities.Property) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, property)
	return n.err
}

type publishedEvent struct {
	topic    string
	envelope contractsv1.Envelope
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, envelope contractsv1.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, envelope: envelope})
	return nil
}

func (p *recordingPublisher) byTopic(topic string) []contractsv1.Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []contractsv1.Envelope
	for _, event := range p.events {
		if event.topic == topic {
			out = append(out, event.envelope)
		}
	}
	return out
}

type staticOwners map[string]entities.OwnerContact

func (o staticOwners) LookupOwner(_ context.Context, ownerID string) (entities.OwnerContact, error) {
	contact, ok := o[ownerID]
	if !ok {
		return entities.OwnerContact{}, errors.New("owner missing")
	}
	return contact, nil
}

var (
	seller = policyentities.NewPrincipal("s1", policyentities.RoleSeller)
	other  = policyentities.NewPrincipal("s2", policyentities.RoleSeller)
	buyer  = policyentities.NewPrincipal("b1", policyentities.RoleBuyer)
	admin  = policyentities.NewPrincipal("a1", policyentities.RoleAdmin)
)

func ptr[T any](value T) *T { return &value }

func cottage() httptransport.PropertyFieldsRequest {
	return httptransport.PropertyFieldsRequest{
		Title:       ptr("Lakeview Cottage"),
		Description: ptr("Two bedroom cottage by the lake"),
		Type:        ptr("House"),
		Price:       ptr(250000.0),
		Location:    ptr("Lake Town"),
		Size:        ptr(1200.0),
		SizeUnit:    ptr("sqft"),
		Bedrooms:    ptr(2),
		Amenities:   []string{"Garden, Parking"},
	}
}

func newModule(notifier *recordingNotifier) Module {
	return NewInMemoryModule(nil, notifier, staticOwners{
		"s1": {FullName: "Sam Seller", Email: "sam@example.com", Phone: "5551234"},
	}, nil, nil)
}

func TestSubmitStartsPendingAndNotifiesOnce(t *testing.T) {
	notifier := &recordingNotifier{}
	module := newModule(notifier)

	resp, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Property.Status)
	assert.Equal(t, "s1", resp.Property.OwnerID)
	assert.Equal(t, []string{"Garden", "Parking"}, resp.Property.Amenities)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Lakeview Cottage", notifier.calls[0].Title)
}

func TestSellerCannotChooseInitialStatus(t *testing.T) {
	module := newModule(&recordingNotifier{})
	req := cottage()
	req.Status = ptr("Active")

	resp, err := module.Handler.CreatePropertyHandler(context.Background(), seller, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Property.Status)

	resp, err = module.Handler.CreatePropertyHandler(context.Background(), admin, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Active", resp.Property.Status)
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("mailbox down")}
	module := newModule(notifier)

	resp, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)

	stored, err := module.Store.GetProperty(context.Background(), resp.Property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusPending, stored.Status)
}

func TestSubmitRequiresAuthenticationAndFields(t *testing.T) {
	module := newModule(&recordingNotifier{})

	_, err := module.Handler.CreatePropertyHandler(context.Background(), policyentities.Anonymous(), cottage(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	req := cottage()
	req.Bedrooms = nil
	_, err = module.Handler.CreatePropertyHandler(context.Background(), seller, req, nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProperty)

	land := cottage()
	land.Type = ptr("Land")
	land.Bedrooms = nil
	land.Amenities = nil
	resp, err := module.Handler.CreatePropertyHandler(context.Background(), seller, land, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Property.Bedrooms)
}

func TestQuickToggleRoundTrip(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID

	resp, err := module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Active"})
	require.NoError(t, err)
	assert.Equal(t, "Active", resp.Property.Status)

	resp, err = module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, created.Property.Status, resp.Property.Status)
}

func TestQuickToggleRejectsSoldAndKeepsStatus(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID
	_, err = module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Active"})
	require.NoError(t, err)

	_, err = module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Sold"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)

	stored, err := module.Store.GetProperty(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusActive, stored.Status)
}

func TestQuickToggleCannotLeaveSold(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID

	_, err = module.Handler.UpdatePropertyHandler(context.Background(), admin, id, httptransport.PropertyFieldsRequest{Status: ptr("Sold")}, nil)
	require.NoError(t, err)

	_, err = module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Active"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestAdminFullEditMovesListingToRented(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	module := NewInMemoryModule(nil, &recordingNotifier{}, nil, publisher, nil)

	created, err := module.Handler.CreatePropertyHandler(ctx, seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID
	require.Equal(t, "Pending", created.Property.Status)

	update := httptransport.PropertyFieldsRequest{Status: ptr("Rented"), Price: ptr(1800.0)}
	resp, err := module.Handler.UpdatePropertyHandler(ctx, admin, id, update, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rented", resp.Property.Status)
	assert.Equal(t, 1800.0, resp.Property.Price)

	stored, err := module.Store.GetProperty(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusRented, stored.Status)

	events := publisher.byTopic(commands.TopicPropertyStatusChanged)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].PartitionKey)
	var data map[string]string
	require.NoError(t, json.Unmarshal(events[0].Data, &data))
	assert.Equal(t, "Pending", data["from"])
	assert.Equal(t, "Rented", data["to"])
	assert.Equal(t, admin.ID, data["actor_id"])

	_, err = module.Handler.UpdatePropertyHandler(ctx, admin, id, httptransport.PropertyFieldsRequest{Title: ptr("Lakeview Cottage (let)")}, nil)
	require.NoError(t, err)
	assert.Len(t, publisher.byTopic(commands.TopicPropertyStatusChanged), 1)
}

func TestSetStatusByNonAdminIsForbidden(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)

	for _, principal := range []policyentities.Principal{seller, other, buyer} {
		_, err := module.Handler.SetStatusHandler(context.Background(), principal, created.Property.PropertyID, httptransport.SetStatusRequest{Status: "Active"})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	}
	_, err = module.Handler.SetStatusHandler(context.Background(), seller, "missing", httptransport.SetStatusRequest{Status: "Bogus"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestSetStatusErrors(t *testing.T) {
	module := newModule(&recordingNotifier{})

	_, err := module.Handler.SetStatusHandler(context.Background(), admin, "missing", httptransport.SetStatusRequest{Status: "Active"})
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)

	_, err = module.Handler.SetStatusHandler(context.Background(), admin, "missing", httptransport.SetStatusRequest{Status: "Archived"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestOwnerEditRules(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID

	resp, err := module.Handler.UpdatePropertyHandler(context.Background(), seller, id, httptransport.PropertyFieldsRequest{Price: ptr(199000.0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 199000.0, resp.Property.Price)
	assert.Equal(t, "Lakeview Cottage", resp.Property.Title)

	_, err = module.Handler.UpdatePropertyHandler(context.Background(), seller, id, httptransport.PropertyFieldsRequest{Status: ptr("Active")}, nil)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = module.Handler.UpdatePropertyHandler(context.Background(), other, id, httptransport.PropertyFieldsRequest{Price: ptr(1.0)}, nil)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	stored, err := module.Store.GetProperty(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusPending, stored.Status)
	assert.Equal(t, 199000.0, stored.Price)
}

func TestImagesReplacedOnlyWhenSupplied(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), []httptransport.ImageUpload{
		{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("front")},
		{Filename: "back.jpg", ContentType: "image/jpeg", Data: []byte("back")},
	})
	require.NoError(t, err)
	require.Len(t, created.Property.Images, 2)
	id := created.Property.PropertyID

	kept, err := module.Handler.UpdatePropertyHandler(context.Background(), seller, id, httptransport.PropertyFieldsRequest{Title: ptr("Lakeview Cottage II")}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.Property.Images, kept.Property.Images)

	replaced, err := module.Handler.UpdatePropertyHandler(context.Background(), seller, id, httptransport.PropertyFieldsRequest{}, []httptransport.ImageUpload{
		{Filename: "new.jpg", ContentType: "image/jpeg", Data: []byte("new")},
	})
	require.NoError(t, err)
	require.Len(t, replaced.Property.Images, 1)
	assert.NotContains(t, created.Property.Images, replaced.Property.Images[0])
	assert.Equal(t, 1, module.Images.Len())

	image, err := module.Handler.ImageHandler(context.Background(), replaced.Property.Images[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), image.Data)
}

func TestDeleteIsAdminOnlyAndSecondDeleteIsNotFound(t *testing.T) {
	module := newModule(&recordingNotifier{})
	created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
	require.NoError(t, err)
	id := created.Property.PropertyID

	_, err = module.Handler.DeletePropertyHandler(context.Background(), seller, id)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = module.Handler.DeletePropertyHandler(context.Background(), admin, id)
	require.NoError(t, err)

	_, err = module.Handler.DeletePropertyHandler(context.Background(), admin, id)
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestScopedListingAndSummary(t *testing.T) {
	module := newModule(&recordingNotifier{})
	for _, principal := range []policyentities.Principal{seller, seller, other} {
		_, err := module.Handler.CreatePropertyHandler(context.Background(), principal, cottage(), nil)
		require.NoError(t, err)
	}

	own, err := module.Handler.ListScopedHandler(context.Background(), seller)
	require.NoError(t, err)
	assert.Len(t, own.Items, 2)

	all, err := module.Handler.ListScopedHandler(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	none, err := module.Handler.ListScopedHandler(context.Background(), policyentities.Anonymous())
	require.NoError(t, err)
	assert.Empty(t, none.Items)

	summary, err := module.Handler.SummaryHandler(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Pending)
}

func TestPublicQueries(t *testing.T) {
	module := newModule(&recordingNotifier{})
	var ids []string
	for i := 0; i < 8; i++ {
		created, err := module.Handler.CreatePropertyHandler(context.Background(), seller, cottage(), nil)
		require.NoError(t, err)
		ids = append(ids, created.Property.PropertyID)
	}
	for _, id := range ids[:7] {
		_, err := module.Handler.SetStatusHandler(context.Background(), admin, id, httptransport.SetStatusRequest{Status: "Active"})
		require.NoError(t, err)
	}

	active, err := module.Handler.ListActiveHandler(context.Background())
	require.NoError(t, err)
	assert.Len(t, active.Items, 7)

	latest, err := module.Handler.ListLatestActiveHandler(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, latest.Items, 6)

	detail, err := module.Handler.GetPropertyHandler(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, detail.Property.OwnerContact)
	assert.Equal(t, "Sam Seller", detail.Property.OwnerContact.FullName)
}

func TestDeleteByOwnerCascade(t *testing.T) {
	module := newModule(&recordingNotifier{})
	for _, principal := range []policyentities.Principal{seller, seller, other} {
		_, err := module.Handler.CreatePropertyHandler(context.Background(), principal, cottage(), []httptransport.ImageUpload{
			{Filename: "a.jpg", Data: []byte("a")},
		})
		require.NoError(t, err)
	}

	removed, err := module.Handler.DeleteProperty.DeleteByOwner(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := module.Handler.ListScopedHandler(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
	assert.Equal(t, "s2", all.Items[0].OwnerID)
	assert.Equal(t, 1, module.Images.Len())
}
