package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-go/api"
	"github.com/ledgerline/ledgerline-go/session"
	"github.com/ledgerline/ledgerline-go/tokenstore"
	"github.com/ledgerline/ledgerline-go/users"
)

const (
	testEmail       = "a@b.com"
	testPassword    = "X"
	testAccessToken = "T1"
	testRefresh     = "R1"
)

// fakeAuthAPI implements session.AuthAPI with canned responses and call
// counters.
type fakeAuthAPI struct {
	loginPayload    *api.AuthPayload
	loginErr        error
	registerPayload *api.AuthPayload
	registerErr     error
	profileUser     *users.User
	profileErr      error
	logoutErr       error

	loginCalls    int
	registerCalls int
	profileCalls  int
	logoutCalls   int
	logoutToken   string
}

var _ session.AuthAPI = (*fakeAuthAPI)(nil)

func (f *fakeAuthAPI) Login(_ context.Context, _ api.Credentials) (*api.AuthPayload, error) {
	f.loginCalls++
	return f.loginPayload, f.loginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, _ api.Registration) (*api.AuthPayload, error) {
	f.registerCalls++
	return f.registerPayload, f.registerErr
}

func (f *fakeAuthAPI) Logout(_ context.Context, refreshToken string) error {
	f.logoutCalls++
	f.logoutToken = refreshToken
	return f.logoutErr
}

func (f *fakeAuthAPI) Profile(_ context.Context) (*users.User, error) {
	f.profileCalls++
	return f.profileUser, f.profileErr
}

type testFixture struct {
	authAPI *fakeAuthAPI
	tokens  *tokenstore.MemoryStore
	store   *session.Store
}

func setupTestFixture(t *testing.T, authAPI *fakeAuthAPI) *testFixture {
	t.Helper()

	tokens := tokenstore.NewMemoryStore()
	store, err := session.New(authAPI, tokens)
	require.NoError(t, err)

	return &testFixture{authAPI: authAPI, tokens: tokens, store: store}
}

func staffUser() *users.User {
	return &users.User{
		ID:          "1",
		Email:       testEmail,
		Role:        users.RoleStaff,
		Permissions: []string{"customers:read"},
	}
}

func TestNew(t *testing.T) {
	t.Run("requires auth API", func(t *testing.T) {
		_, err := session.New(nil, tokenstore.NewMemoryStore())
		require.Error(t, err)
	})

	t.Run("requires token store", func(t *testing.T) {
		_, err := session.New(&fakeAuthAPI{}, nil)
		require.Error(t, err)
	})

	t.Run("starts in the loading state", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{})
		state := f.store.State()
		require.True(t, state.IsLoading)
		require.False(t, state.IsAuthenticated)
		require.Nil(t, state.User)
	})
}

func TestLoadUser(t *testing.T) {
	t.Run("no stored token makes no network call", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{profileUser: staffUser()})

		f.store.LoadUser(context.Background())

		require.Zero(t, f.authAPI.profileCalls)
		state := f.store.State()
		require.False(t, state.IsAuthenticated)
		require.False(t, state.IsLoading)
		require.Nil(t, state.User)
	})

	t.Run("stored token loads the profile", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{profileUser: staffUser()})
		require.NoError(t, f.tokens.SetPair(testAccessToken, testRefresh))

		f.store.LoadUser(context.Background())

		require.Equal(t, 1, f.authAPI.profileCalls)
		state := f.store.State()
		require.True(t, state.IsAuthenticated)
		require.False(t, state.IsLoading)
		require.Equal(t, users.ID("1"), state.User.ID)
	})

	t.Run("profile failure clears both tokens", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{profileErr: &api.Error{Status: 401, Message: "expired"}})
		require.NoError(t, f.tokens.SetPair(testAccessToken, testRefresh))

		f.store.LoadUser(context.Background())

		_, hasAccess := f.tokens.AccessToken()
		_, hasRefresh := f.tokens.RefreshToken()
		require.False(t, hasAccess)
		require.False(t, hasRefresh)

		state := f.store.State()
		require.False(t, state.IsAuthenticated)
		require.False(t, state.IsLoading)
		require.Nil(t, state.User)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success stores tokens and populates the session", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{
			loginPayload: &api.AuthPayload{
				User:   staffUser(),
				Tokens: api.TokenPair{AccessToken: testAccessToken, RefreshToken: testRefresh},
			},
		})

		result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: testPassword})

		require.True(t, result.Success)
		require.Equal(t, users.ID("1"), result.User.ID)

		access, ok := f.tokens.AccessToken()
		require.True(t, ok)
		require.Equal(t, testAccessToken, access)
		refresh, ok := f.tokens.RefreshToken()
		require.True(t, ok)
		require.Equal(t, testRefresh, refresh)

		state := f.store.State()
		require.True(t, state.IsAuthenticated)
		require.Equal(t, users.ID("1"), state.User.ID)
	})

	t.Run("business failure surfaces the envelope message", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{
			loginErr: &api.Error{Status: 400, Message: "Invalid credentials"},
		})

		result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: "wrong"})

		require.False(t, result.Success)
		require.Equal(t, "Invalid credentials", result.Error)

		state := f.store.State()
		require.False(t, state.IsAuthenticated)
		require.Equal(t, "Invalid credentials", state.Error)
	})

	t.Run("transport failure falls back to the generic message", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{loginErr: context.DeadlineExceeded})

		result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: testPassword})

		require.False(t, result.Success)
		require.Equal(t, "Login failed", result.Error)
	})
}

func TestRegister(t *testing.T) {
	t.Run("mirrors the login contract", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{
			registerPayload: &api.AuthPayload{
				User:   staffUser(),
				Tokens: api.TokenPair{AccessToken: testAccessToken, RefreshToken: testRefresh},
			},
		})

		result := f.store.Register(context.Background(), api.Registration{Email: testEmail, Password: testPassword})

		require.True(t, result.Success)
		require.True(t, f.store.State().IsAuthenticated)
		access, ok := f.tokens.AccessToken()
		require.True(t, ok)
		require.Equal(t, testAccessToken, access)
	})

	t.Run("failure uses the registration fallback message", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{registerErr: context.DeadlineExceeded})

		result := f.store.Register(context.Background(), api.Registration{Email: testEmail, Password: testPassword})

		require.False(t, result.Success)
		require.Equal(t, "Registration failed", result.Error)
	})
}

func TestLogout(t *testing.T) {
	t.Run("login then logout restores the initial unauthenticated state", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{
			loginPayload: &api.AuthPayload{
				User:   staffUser(),
				Tokens: api.TokenPair{AccessToken: testAccessToken, RefreshToken: testRefresh},
			},
		})

		result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: testPassword})
		require.True(t, result.Success)

		f.store.Logout(context.Background())

		require.Equal(t, 1, f.authAPI.logoutCalls)
		require.Equal(t, testRefresh, f.authAPI.logoutToken)

		_, hasAccess := f.tokens.AccessToken()
		_, hasRefresh := f.tokens.RefreshToken()
		require.False(t, hasAccess)
		require.False(t, hasRefresh)

		state := f.store.State()
		require.False(t, state.IsAuthenticated)
		require.False(t, state.IsLoading)
		require.Nil(t, state.User)
		require.Empty(t, state.Error)
	})

	t.Run("server failure still clears everything", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{logoutErr: context.DeadlineExceeded})
		require.NoError(t, f.tokens.SetPair(testAccessToken, testRefresh))

		f.store.Logout(context.Background())

		_, hasAccess := f.tokens.AccessToken()
		require.False(t, hasAccess)
		require.False(t, f.store.State().IsAuthenticated)
	})

	t.Run("no refresh token skips the server call", func(t *testing.T) {
		f := setupTestFixture(t, &fakeAuthAPI{})

		f.store.Logout(context.Background())

		require.Zero(t, f.authAPI.logoutCalls)
	})
}

func TestUpdateUser(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{
		loginPayload: &api.AuthPayload{
			User:   staffUser(),
			Tokens: api.TokenPair{AccessToken: testAccessToken, RefreshToken: testRefresh},
		},
	})

	result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: testPassword})
	require.True(t, result.Success)

	f.store.UpdateUser(users.User{Profile: users.Profile{FirstName: "Ada"}})

	state := f.store.State()
	require.Equal(t, "Ada", state.User.Profile.FirstName)
	require.Equal(t, testEmail, state.User.Email)

	// Snapshots are copies; mutating one must not leak back.
	state.User.Profile.FirstName = "Eve"
	require.Equal(t, "Ada", f.store.State().User.Profile.FirstName)
}

func TestClearError(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{
		loginErr: &api.Error{Status: 400, Message: "Invalid credentials"},
	})

	result := f.store.Login(context.Background(), api.Credentials{Email: testEmail, Password: "wrong"})
	require.False(t, result.Success)
	require.NotEmpty(t, f.store.State().Error)

	f.store.ClearError()
	require.Empty(t, f.store.State().Error)
}
