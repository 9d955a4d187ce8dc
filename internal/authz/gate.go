package authz

// Decide reports whether an operation with the given declaration may be
// performed by the principal. It is pure and never errors: any failure to
// resolve a principal upstream must be normalized to a nil principal
// before the gate runs.
//
// The undeclared check comes first. It is the only path that tolerates an
// absent principal.
func Decide(decl Declaration, p *Principal) bool {
	if !decl.restricted {
		return true
	}
	if p == nil {
		return false
	}
	for _, role := range decl.roles {
		if role == RoleAny || role == p.Role {
			return true
		}
	}
	return false
}
