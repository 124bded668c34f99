package commands

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"estatehub/contexts/engagement/notification-service/adapters/memory"
	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"
	"estatehub/contexts/engagement/notification-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAdmins []string

func (a staticAdmins) ListAdminIDs(context.Context) ([]string, error) {
	return a, nil
}

// flakyRepository fails writes addressed to one recipient.
type flakyRepository struct {
	*memory.Store
	failFor string
}

func (r flakyRepository) CreateNotification(ctx context.Context, item entities.Notification) error {
	if item.RecipientID == r.failFor {
		return errors.New("write refused")
	}
	return r.Store.CreateNotification(ctx, item)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []ports.EventEnvelope
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newUseCase(repo ports.Repository, admins ports.AdminDirectory, publisher ports.EventPublisher) NotifyAdminsUseCase {
	store := memory.NewStore()
	return NotifyAdminsUseCase{
		Repository: repo,
		Admins:     admins,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
	}
}

func TestNotifyAdminsCreatesOnePerAdmin(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturePublisher{}
	uc := newUseCase(store, staticAdmins{"a1", "a2"}, publisher)

	result, err := uc.Execute(context.Background(), NotifyAdminsCommand{
		Subject: entities.PropertySubject("p1", "Lakeview Cottage"),
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Zero(t, result.Failed)

	all := store.All()
	require.Len(t, all, 2)
	recipients := []string{all[0].RecipientID, all[1].RecipientID}
	sort.Strings(recipients)
	assert.Equal(t, []string{"a1", "a2"}, recipients)
	for _, item := range all {
		assert.Equal(t, entities.NotificationTypePropertyApproval, item.Type)
		assert.Equal(t, "p1", item.RelatedPropertyID)
		assert.Empty(t, item.RelatedContactID)
		assert.Equal(t, `A new property "Lakeview Cottage" requires your approval.`, item.Message)
		assert.False(t, item.IsRead)
	}
	assert.Len(t, publisher.events, 2)
}

func TestNotifyAdminsKeepsEarlierWritesOnPartialFailure(t *testing.T) {
	store := memory.NewStore()
	repo := flakyRepository{Store: store, failFor: "a3"}
	uc := newUseCase(repo, staticAdmins{"a1", "a2", "a3", "a4", "a5"}, nil)
	uc.Concurrency = 1

	result, err := uc.Execute(context.Background(), NotifyAdminsCommand{
		Subject: entities.ContactSubject("c1", "Jane"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a3")
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Created, 4)
	assert.Len(t, store.All(), 4)
	for _, item := range store.All() {
		assert.Equal(t, "New contact submission from Jane", item.Message)
		assert.Equal(t, "c1", item.RelatedContactID)
		assert.Empty(t, item.RelatedPropertyID)
	}
}

func TestNotifyAdminsWithNoAdmins(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, staticAdmins{}, nil)

	result, err := uc.Execute(context.Background(), NotifyAdminsCommand{
		Subject: entities.PropertySubject("p1", "Loft"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Empty(t, store.All())
}

func TestNotifyAdminsRejectsInvalidSubject(t *testing.T) {
	uc := newUseCase(memory.NewStore(), staticAdmins{"a1"}, nil)
	_, err := uc.Execute(context.Background(), NotifyAdminsCommand{Subject: entities.Subject{Type: "promo", ID: "x"}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSubject)
}

func TestMarkReadRequiresRecipient(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, staticAdmins{"a1"}, nil)
	result, err := uc.Execute(context.Background(), NotifyAdminsCommand{Subject: entities.PropertySubject("p1", "Loft")})
	require.NoError(t, err)
	id := result.Created[0].NotificationID

	markRead := MarkReadUseCase{Repository: store}

	_, err = markRead.Execute(context.Background(), MarkReadCommand{
		Principal:      policyentities.NewPrincipal("s1", policyentities.RoleSeller),
		NotificationID: id,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = markRead.Execute(context.Background(), MarkReadCommand{
		Principal:      policyentities.NewPrincipal("a2", policyentities.RoleAdmin),
		NotificationID: id,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)

	item, err := markRead.Execute(context.Background(), MarkReadCommand{
		Principal:      policyentities.NewPrincipal("a1", policyentities.RoleAdmin),
		NotificationID: id,
	})
	require.NoError(t, err)
	assert.True(t, item.IsRead)

	stored, err := store.GetNotification(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}
