// Package authz decides whether an inbound operation may proceed.
//
// Every route carries a Declaration: either Public (no role check at all)
// or Restricted to a set of roles. The decision itself is a pure function
// over the declaration and the principal attached to the request.
package authz

// Role is the category of principal used for access decisions.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleOwner    Role = "OWNER"
	RoleDelivery Role = "DELIVERY"
	// RoleAny matches every authenticated principal.
	RoleAny Role = "ANY"
)

// Principal describes the authenticated actor attached to a request.
// A nil *Principal means the request is unauthenticated.
type Principal struct {
	ID   int64
	Role Role
}

// Declaration is the set of roles an operation permits. The zero value is
// "undeclared", i.e. a public operation that bypasses the gate entirely.
// A Restricted declaration with no roles denies everyone.
type Declaration struct {
	restricted bool
	roles      []Role
}

// Public returns the undeclared Declaration.
func Public() Declaration {
	return Declaration{}
}

// Restricted declares the roles allowed to perform an operation.
func Restricted(roles ...Role) Declaration {
	return Declaration{restricted: true, roles: roles}
}

// Restricted reports whether the declaration limits access to roles.
func (d Declaration) Restricted() bool {
	return d.restricted
}

// Roles returns the declared role set. It is meaningful only when the
// declaration is restricted.
func (d Declaration) Roles() []Role {
	out := make([]Role, len(d.roles))
	copy(out, d.roles)
	return out
}
