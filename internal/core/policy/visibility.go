// Package policy decides which records a principal may see and change.
// Every read and write path goes through these functions; callers must not
// compare roles or owners themselves.
package policy

import (
	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// FilterKind is the shape of a visibility restriction.
type FilterKind int

const (
	// FilterDeny admits no record.
	FilterDeny FilterKind = iota
	// FilterUnrestricted admits every record.
	FilterUnrestricted
	// FilterOwner admits records whose owner is OwnerID.
	FilterOwner
)

// VisibilityFilter is a compiled visibility predicate. Repositories translate it
// into a query condition instead of checking records one by one.
type VisibilityFilter struct {
	Kind    FilterKind
	OwnerID int64
}

// Matches evaluates the filter against a single record.
func (f VisibilityFilter) Matches(r domain.Record) bool {
	switch f.Kind {
	case FilterUnrestricted:
		return true
	case FilterOwner:
		return r.OwnerID == f.OwnerID
	default:
		return false
	}
}

// Filter returns the visibility predicate for p. Unknown roles get a deny filter.
func Filter(p domain.Principal) VisibilityFilter {
	switch p.Role {
	case domain.RoleAdmin:
		return VisibilityFilter{Kind: FilterUnrestricted}
	case domain.RoleEmployee, domain.RoleManager:
		if p.ID <= 0 {
			return VisibilityFilter{Kind: FilterDeny}
		}
		return VisibilityFilter{Kind: FilterOwner, OwnerID: p.ID}
	default:
		return VisibilityFilter{Kind: FilterDeny}
	}
}

// CanView reports whether p may read r.
func CanView(p domain.Principal, r domain.Record) bool {
	return Filter(p).Matches(r)
}

// CanMutate reports whether p may update r. It must be evaluated against the
// stored record at the time of the write.
func CanMutate(p domain.Principal, r domain.Record) bool {
	return Filter(p).Matches(r)
}

// CanDelete uses the same rule as CanMutate.
func CanDelete(p domain.Principal, r domain.Record) bool {
	return CanMutate(p, r)
}

// CanManageUsers reports whether p may administer other accounts.
func CanManageUsers(p domain.Principal) bool {
	return p.Role == domain.RoleAdmin
}

// ReconcileRole picks the role to enforce when a token claim and the stored
// account disagree. The stored role wins when it is valid; with no valid stored
// role the result is invalid, so every check fails closed.
func ReconcileRole(claimed domain.Role, stored domain.Role, storedKnown bool) (role domain.Role, mismatch bool) {
	if !storedKnown || !stored.Valid() {
		return "", claimed != ""
	}
	return stored, claimed != stored
}
