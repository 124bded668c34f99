package services

import (
	"testing"

	"estatehub/contexts/identity-access/access-policy/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	id    string
	owner string
}

func (l listing) OwnedBy() string { return l.owner }

func sampleListings() []listing {
	return []listing{
		{id: "p1", owner: "s1"},
		{id: "p2", owner: "s2"},
		{id: "p3", owner: "s1"},
		{id: "p4", owner: ""},
	}
}

func TestScopedPropertiesAdminSeesAll(t *testing.T) {
	admin := entities.NewPrincipal("a1", entities.RoleAdmin)
	visible := ScopedProperties(admin, sampleListings())
	assert.Len(t, visible, 4)
	assert.True(t, CanViewAll(admin))
}

func TestScopedPropertiesNonAdminSeesOwnOnly(t *testing.T) {
	for _, role := range []entities.Role{entities.RoleSeller, entities.RoleBuyer} {
		principal := entities.NewPrincipal("s1", role)
		visible := ScopedProperties(principal, sampleListings())
		require.Len(t, visible, 2, role.String())
		for _, item := range visible {
			assert.Equal(t, "s1", item.owner)
		}
		assert.False(t, CanViewAll(principal))
	}
}

func TestScopedPropertiesAnonymousIsEmpty(t *testing.T) {
	visible := ScopedProperties(entities.Anonymous(), sampleListings())
	require.NotNil(t, visible)
	assert.Empty(t, visible)
	assert.Equal(t, ScopeNone, ListingScope(entities.Anonymous()).Kind)
}

func TestListingScopeForSeller(t *testing.T) {
	scope := ListingScope(entities.NewPrincipal("s9", entities.RoleSeller))
	assert.Equal(t, Scope{Kind: ScopeOwner, OwnerID: "s9"}, scope)
	assert.True(t, scope.Includes("s9"))
	assert.False(t, scope.Includes(""))
}

func TestBuyerCannotDeleteAnything(t *testing.T) {
	buyer := entities.NewPrincipal("b1", entities.RoleBuyer)
	for _, owner := range []string{"b1", "s1", "a1", ""} {
		assert.False(t, CanMutate(buyer, owner, entities.ActionPropertyDelete), owner)
	}
}

func TestAdminOnlyActions(t *testing.T) {
	actions := []entities.Action{
		entities.ActionPropertyFullEdit,
		entities.ActionPropertySetStatus,
		entities.ActionPropertyDelete,
		entities.ActionUserList,
		entities.ActionUserEdit,
		entities.ActionUserDelete,
		entities.ActionContactList,
		entities.ActionNotificationRead,
	}
	admin := entities.NewPrincipal("a1", entities.RoleAdmin)
	seller := entities.NewPrincipal("s1", entities.RoleSeller)
	for _, action := range actions {
		decision := Decide(admin, "s1", action)
		assert.True(t, decision.Allowed, string(action))
		assert.Equal(t, ReasonRoleGrant, decision.Reason)

		denied := Decide(seller, "s1", action)
		assert.False(t, denied.Allowed, string(action))
		assert.Equal(t, ReasonDenied, denied.Reason)
	}
}

func TestOwnerMayEditOwnProperty(t *testing.T) {
	seller := entities.NewPrincipal("s1", entities.RoleSeller)

	decision := Decide(seller, "s1", entities.ActionPropertyEdit)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonOwnerGrant, decision.Reason)

	assert.False(t, CanMutate(seller, "s2", entities.ActionPropertyEdit))
	assert.False(t, CanMutate(seller, "", entities.ActionPropertyEdit))
	assert.True(t, CanMutate(seller, "s1", entities.ActionUserProfileEdit))
	assert.False(t, CanMutate(seller, "s2", entities.ActionUserProfileEdit))
}

func TestCreateNeedsAnyAuthenticatedPrincipal(t *testing.T) {
	assert.True(t, CanMutate(entities.NewPrincipal("b1", entities.RoleBuyer), "", entities.ActionPropertyCreate))
	assert.True(t, CanMutate(entities.NewPrincipal("s1", entities.RoleSeller), "", entities.ActionPropertyCreate))

	decision := Decide(entities.Anonymous(), "", entities.ActionPropertyCreate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
}

func TestUnknownActionIsDenied(t *testing.T) {
	decision := Decide(entities.NewPrincipal("a1", entities.RoleAdmin), "", entities.Action("property.teleport"))
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnknownAction, decision.Reason)
}
