package rest

import (
	"context"

	"taskmaster/internal/service"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (service.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var session service.Session
	if err := c.api.Post(ctx, "/v1/auth/login", body, &session); err != nil {
		return service.Session{}, err
	}
	return session, nil
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (service.Session, error) {
	body := struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{fullName, email, password}

	var session service.Session
	if err := c.api.Post(ctx, "/v1/auth/register", body, &session); err != nil {
		return service.Session{}, err
	}
	return session, nil
}

// Logout notifies the server that the session is ending.
func (c *Client) Logout(ctx context.Context) error {
	return c.api.Post(ctx, "/v1/auth/logout", nil, nil)
}

// RequestPasswordReset asks the server to email a reset OTP.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{email}
	return c.api.Post(ctx, "/v1/auth/forgot-password", body, nil)
}

// VerifyResetToken checks a reset-link token against the server.
func (c *Client) VerifyResetToken(ctx context.Context, token string) (string, error) {
	body := struct {
		Token string `json:"token"`
	}{token}

	var resp struct {
		Valid bool   `json:"valid"`
		Email string `json:"email"`
	}
	if err := c.api.Post(ctx, "/v1/auth/verify-reset-token", body, &resp); err != nil {
		return "", err
	}
	if !resp.Valid {
		return "", service.ErrResetTokenInvalid
	}
	return resp.Email, nil
}

// ResetPassword sets a new password using an emailed OTP.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}{email, otp, newPassword}
	return c.api.Post(ctx, "/v1/auth/reset-password", body, nil)
}

// ResetPasswordWithToken sets a new password using a reset-link token.
func (c *Client) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{token, newPassword}
	return c.api.Post(ctx, "/v1/auth/reset-password", body, nil)
}
