// Package authz holds the role capability table that gates route groups.
// Record-level visibility is decided by the policy package, not here.
package authz

import (
	"fmt"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	ObjectRecords = "records"
	ObjectSelf    = "self"
	ObjectUsers   = "users"
)

const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionExport = "export"
	ActionDelete = "delete"
	ActionManage = "manage"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// defaultPolicies lists every (role, object, action) that is allowed.
var defaultPolicies = [][]string{
	{string(domain.RoleAdmin), ObjectRecords, ActionRead},
	{string(domain.RoleAdmin), ObjectRecords, ActionWrite},
	{string(domain.RoleAdmin), ObjectRecords, ActionExport},
	{string(domain.RoleAdmin), ObjectSelf, ActionRead},
	{string(domain.RoleAdmin), ObjectSelf, ActionDelete},
	{string(domain.RoleAdmin), ObjectUsers, ActionManage},

	{string(domain.RoleManager), ObjectRecords, ActionRead},
	{string(domain.RoleManager), ObjectRecords, ActionWrite},
	{string(domain.RoleManager), ObjectRecords, ActionExport},
	{string(domain.RoleManager), ObjectSelf, ActionRead},
	{string(domain.RoleManager), ObjectSelf, ActionDelete},

	{string(domain.RoleEmployee), ObjectRecords, ActionRead},
	{string(domain.RoleEmployee), ObjectRecords, ActionWrite},
	{string(domain.RoleEmployee), ObjectRecords, ActionExport},
	{string(domain.RoleEmployee), ObjectSelf, ActionRead},
	{string(domain.RoleEmployee), ObjectSelf, ActionDelete},
}

// Authorizer answers whether a role holds a capability.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer from the embedded model and capability table.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: create enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("authz: load policies: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Authorize reports whether role may perform action on object. Unknown roles are refused.
func (a *Authorizer) Authorize(role domain.Role, object, action string) (bool, error) {
	if !role.Valid() {
		return false, nil
	}
	return a.enforcer.Enforce(string(role), object, action)
}
