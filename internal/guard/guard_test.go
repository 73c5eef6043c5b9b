package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_NoToken(t *testing.T) {
	anon := Session{}

	tests := []struct {
		name     string
		dest     Destination
		expected Decision
	}{
		{"login stays reachable", RouteLogin, Allow},
		{"dashboard redirects", RouteDashboard, RedirectLogin},
		{"cashier redirects", RouteCashier, RedirectLogin},
		{"restricted screen redirects", RouteReports, RedirectLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Authorize(tt.dest, anon))
		})
	}
}

func TestAuthorize_RoleRestrictions(t *testing.T) {
	tests := []struct {
		name     string
		dest     Destination
		role     string
		expected Decision
	}{
		{"cashier enters cashier screen", RouteCashier, RoleCashier, Allow},
		{"cashier blocked from products", RouteProducts, RoleCashier, RedirectForbidden},
		{"manager enters products", RouteProducts, RoleManager, Allow},
		{"manager blocked from cashier screen", RouteCashier, RoleManager, RedirectForbidden},
		{"any role enters dashboard", RouteDashboard, "stocker", Allow},
		{"orders open to cashier", RouteOrders, RoleCashier, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{Token: "tok", Role: tt.role}
			assert.Equal(t, tt.expected, Authorize(tt.dest, s))
		})
	}
}

func TestAuthorize_AdminOverridesEveryRestriction(t *testing.T) {
	admin := Session{Token: "tok", Role: RoleAdmin}

	for _, dest := range routes {
		assert.Equal(t, Allow, Authorize(dest, admin), "destination %s", dest.Name)
	}
}

func TestAuthorize_TokenPresentLoginAllowed(t *testing.T) {
	s := Session{Token: "tok", Role: RoleCashier}
	assert.Equal(t, Allow, Authorize(RouteLogin, s))
}

func TestFind(t *testing.T) {
	d, ok := Find("cashier")
	assert.True(t, ok)
	assert.Equal(t, "cashier", d.Name)

	_, ok = Find("warehouse")
	assert.False(t, ok)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect:login", RedirectLogin.String())
	assert.Equal(t, "redirect:forbidden", RedirectForbidden.String())
}
