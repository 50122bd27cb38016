package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-go/guard"
	"github.com/ledgerline/ledgerline-go/session"
	"github.com/ledgerline/ledgerline-go/users"
)

func authenticatedState(role users.RoleType, permissions []string) session.State {
	return session.State{
		User: &users.User{
			ID:          "u1",
			Role:        role,
			Permissions: permissions,
		},
		IsAuthenticated: true,
	}
}

func TestCheck(t *testing.T) {
	t.Run("loading session waits", func(t *testing.T) {
		decision := guard.Check(session.State{IsLoading: true}, nil, "/invoices")
		require.Equal(t, guard.Loading, decision.Outcome)
		require.Empty(t, decision.RedirectTo)
	})

	t.Run("unauthenticated redirects to login preserving the target", func(t *testing.T) {
		decision := guard.Check(session.State{}, nil, "/invoices")
		require.Equal(t, guard.RedirectLogin, decision.Outcome)
		require.Equal(t, guard.LoginRoute, decision.RedirectTo)
		require.Equal(t, "/invoices", decision.From)
	})

	t.Run("authenticated with no required permissions is granted", func(t *testing.T) {
		decision := guard.Check(authenticatedState(users.RoleStaff, nil), nil, "/dashboard")
		require.Equal(t, guard.Granted, decision.Outcome)
	})

	t.Run("owner bypasses permission checks", func(t *testing.T) {
		state := authenticatedState(users.RoleBusinessOwner, nil)
		decision := guard.Check(state, []string{"invoices:write"}, "/invoices")
		require.Equal(t, guard.Granted, decision.Outcome)
	})

	t.Run("admin bypasses permission checks", func(t *testing.T) {
		state := authenticatedState(users.RoleAdmin, nil)
		decision := guard.Check(state, []string{"invoices:write"}, "/invoices")
		require.Equal(t, guard.Granted, decision.Outcome)
	})

	t.Run("insufficient permissions redirect to unauthorized", func(t *testing.T) {
		state := authenticatedState(users.RoleStaff, []string{"invoices:read"})
		decision := guard.Check(state, []string{"invoices:write"}, "/invoices")
		require.Equal(t, guard.RedirectUnauthorized, decision.Outcome)
		require.Equal(t, guard.UnauthorizedRoute, decision.RedirectTo)
	})

	t.Run("superset of required permissions is granted", func(t *testing.T) {
		state := authenticatedState(users.RoleStaff, []string{"invoices:read", "invoices:write", "customers:read"})
		decision := guard.Check(state, []string{"invoices:read", "invoices:write"}, "/invoices")
		require.Equal(t, guard.Granted, decision.Outcome)
	})

	t.Run("authenticated flag without a user is treated as logged out", func(t *testing.T) {
		decision := guard.Check(session.State{IsAuthenticated: true}, nil, "/settings")
		require.Equal(t, guard.RedirectLogin, decision.Outcome)
	})
}
