package contactservice

import (
	"context"
	"errors"
	"testing"

	"estatehub/contexts/engagement/contact-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/contact-service/domain/errors"
	httptransport "estatehub/contexts/engagement/contact-service/transport/http"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierStub struct {
	calls []entities.Contact
	err   error
}

func (n *notifierStub) NotifyContactSubmitted(_ context.Context, contact entities.Contact) error {
	n.calls = append(n.calls, contact)
	return n.err
}

func TestSubmitContactNotifiesAdmins(t *testing.T) {
	notifier := &notifierStub{}
	module := NewInMemoryModule(notifier, nil)
	ctx := context.Background()

	resp, err := module.Handler.SubmitContactHandler(ctx, httptransport.SubmitContactRequest{
		Name:    "Jane Visitor",
		Email:   "jane@example.com",
		Message: "Is the cottage still available?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Contact.ContactID)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Jane Visitor", notifier.calls[0].Name)
}

func TestSubmitContactSurvivesNotifierFailure(t *testing.T) {
	notifier := &notifierStub{err: errors.New("broker down")}
	module := NewInMemoryModule(notifier, nil)

	_, err := module.Handler.SubmitContactHandler(context.Background(), httptransport.SubmitContactRequest{
		Name:    "Jane Visitor",
		Email:   "jane@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)
	items, err := module.Store.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSubmitContactValidation(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	cases := []httptransport.SubmitContactRequest{
		{Email: "jane@example.com", Message: "hi"},
		{Name: "Jane", Message: "hi"},
		{Name: "Jane", Email: "jane@example.com"},
		{Name: "Jane", Email: "not-an-email", Message: "hi"},
	}
	for _, req := range cases {
		_, err := module.Handler.SubmitContactHandler(context.Background(), req)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidContact)
	}
}

func TestListContactsIsAdminOnly(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	_, err := module.Handler.SubmitContactHandler(ctx, httptransport.SubmitContactRequest{
		Name: "Jane", Email: "jane@example.com", Message: "hi",
	})
	require.NoError(t, err)

	_, err = module.Handler.ListContactsHandler(ctx, policyentities.Anonymous())
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	_, err = module.Handler.ListContactsHandler(ctx, policyentities.NewPrincipal("s1", policyentities.RoleSeller))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	resp, err := module.Handler.ListContactsHandler(ctx, policyentities.NewPrincipal("a1", policyentities.RoleAdmin))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "jane@example.com", resp.Items[0].Email)
}
