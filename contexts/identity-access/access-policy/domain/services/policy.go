package services

import (
	"estatehub/contexts/identity-access/access-policy/domain/entities"
)

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonUnknownAction   = "unknown_action"
	ReasonRoleGrant       = "role_grant"
	ReasonOwnerGrant      = "owner_grant"
	ReasonAuthenticated   = "authenticated"
	ReasonDenied          = "denied"
)

type rule struct {
	// roles may perform the action on any resource.
	roles []entities.Role
	// owner may perform the action on a resource it owns.
	owner bool
	// anyAuthenticated allows every signed-in principal regardless of ownership.
	anyAuthenticated bool
}

// policyTable is the single place where role and ownership grants are declared.
var policyTable = map[entities.Action]rule{
	entities.ActionPropertyCreate:    {anyAuthenticated: true},
	entities.ActionPropertyEdit:      {roles: admins(), owner: true},
	entities.ActionPropertyFullEdit:  {roles: admins()},
	entities.ActionPropertySetStatus: {roles: admins()},
	entities.ActionPropertyDelete:    {roles: admins()},
	entities.ActionPropertyViewAll:   {roles: admins()},

	entities.ActionUserList:        {roles: admins()},
	entities.ActionUserEdit:        {roles: admins()},
	entities.ActionUserDelete:      {roles: admins()},
	entities.ActionUserProfileEdit: {roles: admins(), owner: true},

	entities.ActionContactList:      {roles: admins()},
	entities.ActionNotificationRead: {roles: admins()},
}

func admins() []entities.Role {
	return []entities.Role{entities.RoleAdmin}
}

// Decide evaluates action against the policy table for a resource owned by resourceOwnerID.
// An empty resourceOwnerID never matches an owner grant.
func Decide(principal entities.Principal, resourceOwnerID string, action entities.Action) entities.Decision {
	decision := entities.Decision{Action: action}
	if !principal.Authenticated() {
		decision.Reason = ReasonUnauthenticated
		return decision
	}
	r, ok := policyTable[action]
	if !ok {
		decision.Reason = ReasonUnknownAction
		return decision
	}
	for _, role := range r.roles {
		if principal.Role == role {
			decision.Allowed = true
			decision.Reason = ReasonRoleGrant
			return decision
		}
	}
	if r.owner && resourceOwnerID != "" && resourceOwnerID == principal.ID {
		decision.Allowed = true
		decision.Reason = ReasonOwnerGrant
		return decision
	}
	if r.anyAuthenticated {
		decision.Allowed = true
		decision.Reason = ReasonAuthenticated
		return decision
	}
	decision.Reason = ReasonDenied
	return decision
}

// CanMutate reports whether principal may perform action on a resource owned by resourceOwnerID.
func CanMutate(principal entities.Principal, resourceOwnerID string, action entities.Action) bool {
	return Decide(principal, resourceOwnerID, action).Allowed
}

// CanViewAll reports whether principal sees every listing instead of its own.
func CanViewAll(principal entities.Principal) bool {
	return CanMutate(principal, "", entities.ActionPropertyViewAll)
}
