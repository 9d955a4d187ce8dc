package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurier-app/kurier/internal/authz"
)

func gateRequest(t *testing.T, decl authz.Declaration, p *authz.Principal) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := authz.Middleware{}.Require(decl)(next)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	if p != nil {
		req = req.WithContext(authz.ContextWithPrincipal(req.Context(), p))
	}
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestRequireAllowsPublicWithoutPrincipal(t *testing.T) {
	res := gateRequest(t, authz.Public(), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestRequireDeniesWithoutPrincipal(t *testing.T) {
	res := gateRequest(t, authz.Restricted(authz.RoleOwner), nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRequireAllowsMatchingRole(t *testing.T) {
	res := gateRequest(t, authz.Restricted(authz.RoleOwner), &authz.Principal{ID: 1, Role: authz.RoleOwner})
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestRequireDenyBodyDoesNotLeakReason(t *testing.T) {
	// The body for "no principal" and "wrong role" must be identical.
	missing := gateRequest(t, authz.Restricted(authz.RoleOwner), nil)
	wrongRole := gateRequest(t, authz.Restricted(authz.RoleOwner), &authz.Principal{ID: 2, Role: authz.RoleClient})

	require.Equal(t, http.StatusForbidden, missing.Code)
	require.Equal(t, http.StatusForbidden, wrongRole.Code)
	assert.Equal(t, missing.Body.String(), wrongRole.Body.String())
}
