package api

import (
	"context"
	"net/http"

	"github.com/ledgerline/ledgerline-go/users"
)

// AuthService groups the /auth endpoints.
type AuthService struct {
	client *Client
}

// Credentials identify a user at login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

// AuthPayload is the data object returned by login and register.
type AuthPayload struct {
	User   *users.User `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

// Login exchanges credentials for a user and token pair. Token persistence is
// the session store's job, not this call's.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*AuthPayload, error) {
	payload, err := sendJSON[AuthPayload](ctx, s.client, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates an account and returns the same payload shape as Login.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*AuthPayload, error) {
	payload, err := sendJSON[AuthPayload](ctx, s.client, http.MethodPost, "/auth/register", reg)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Logout invalidates the refresh token server-side.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": refreshToken})
	return err
}

// Refresh mints a new token pair from a refresh token. The client does this
// automatically on 401; the explicit call exists for embedders that renew
// proactively.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	payload, err := sendJSON[struct {
		Tokens TokenPair `json:"tokens"`
	}](ctx, s.client, http.MethodPost, refreshRoute, map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, err
	}
	return &payload.Tokens, nil
}

// Profile fetches the authenticated user.
func (s *AuthService) Profile(ctx context.Context) (*users.User, error) {
	payload, err := getJSON[struct {
		User *users.User `json:"user"`
	}](ctx, s.client, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return payload.User, nil
}

// UpdateProfile applies a partial profile update and returns the stored user.
func (s *AuthService) UpdateProfile(ctx context.Context, partial users.User) (*users.User, error) {
	payload, err := sendJSON[struct {
		User *users.User `json:"user"`
	}](ctx, s.client, http.MethodPut, "/auth/profile", partial)
	if err != nil {
		return nil, err
	}
	return payload.User, nil
}

// ChangePassword rotates the user's password.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodPost, "/auth/change-password", body)
	return err
}

// ForgotPassword starts a password reset flow for the given email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
	return err
}

// ResetPassword completes a password reset with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{
		"token":       token,
		"newPassword": newPassword,
	}
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodPost, "/auth/reset-password", body)
	return err
}

// VerifyEmail confirms the user's email address with the emailed token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodPost, "/auth/verify-email", map[string]string{"token": token})
	return err
}
