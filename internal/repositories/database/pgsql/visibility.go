package pgsql

import (
	"strconv"

	"github.com/SscSPs/records_management_app/internal/core/policy"
)

// queryArgs collects positional parameters while a statement is assembled.
type queryArgs []any

// add appends v and returns its placeholder.
func (a *queryArgs) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// visibilityCondition compiles a visibility filter to a boolean SQL expression over
// the records alias. It is placed inside JOIN conditions so aggregates keep
// regions and categories with no visible rows.
func visibilityCondition(filter policy.VisibilityFilter, alias string, args *queryArgs) string {
	switch filter.Kind {
	case policy.FilterUnrestricted:
		return "TRUE"
	case policy.FilterOwner:
		return alias + ".owner_id = " + args.add(filter.OwnerID)
	default:
		return "FALSE"
	}
}
