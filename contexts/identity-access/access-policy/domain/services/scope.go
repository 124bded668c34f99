package services

import "estatehub/contexts/identity-access/access-policy/domain/entities"

// ScopeKind tells a repository how to narrow a listing query.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeOwner
	ScopeAll
)

// Scope is the visible-set decision in a form that can be pushed into a query.
type Scope struct {
	Kind    ScopeKind
	OwnerID string
}

// ListingScope computes which records principal may list.
func ListingScope(principal entities.Principal) Scope {
	switch {
	case !principal.Authenticated():
		return Scope{Kind: ScopeNone}
	case CanViewAll(principal):
		return Scope{Kind: ScopeAll}
	default:
		return Scope{Kind: ScopeOwner, OwnerID: principal.ID}
	}
}

// Includes reports whether a record owned by ownerID falls inside the scope.
func (s Scope) Includes(ownerID string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeOwner:
		return ownerID != "" && ownerID == s.OwnerID
	default:
		return false
	}
}

// Owned is implemented by records that carry an owning principal id.
type Owned interface {
	OwnedBy() string
}

// ScopedProperties filters items to the subset principal may see.
// Anonymous principals get an empty, non-nil slice.
func ScopedProperties[T Owned](principal entities.Principal, items []T) []T {
	scope := ListingScope(principal)
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if scope.Includes(item.OwnedBy()) {
			visible = append(visible, item)
		}
	}
	return visible
}
