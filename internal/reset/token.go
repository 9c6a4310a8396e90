package reset

import (
	"context"
	"errors"
	"strings"

	"taskmaster/internal/service"
)

// Password rules enforced locally by the token flow before submission.
var (
	ErrPasswordUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordLowercase = errors.New("password must contain at least one lowercase letter")
	ErrPasswordDigit     = errors.New("password must contain at least one number")
)

// ErrTokenMissing is returned when no token was supplied; verification is
// never attempted in that case.
var ErrTokenMissing = errors.New("missing reset token")

// TokenState is the state of a reset-link token flow.
type TokenState int

const (
	// TokenVerifying awaits token verification.
	TokenVerifying TokenState = iota
	// TokenValid holds a verified token and awaits the new password.
	TokenValid
	// TokenInvalid is terminal; the token was rejected or verification
	// failed, and the user must request a new link.
	TokenInvalid
	// TokenDone is terminal; the password was reset.
	TokenDone
)

// TokenFlow is the reset-link flow: verify the URL token, then set a new
// password against it.
type TokenFlow struct {
	svc   service.Service
	state TokenState
	token string
	email string
}

// NewTokenFlow creates a flow in the verifying state.
func NewTokenFlow(svc service.Service) *TokenFlow {
	return &TokenFlow{svc: svc, state: TokenVerifying}
}

// State returns the current flow state.
func (f *TokenFlow) State() TokenState { return f.state }

// Email returns the address associated with a verified token.
func (f *TokenFlow) Email() string { return f.email }

// Verify checks the token with the server. An empty token fails immediately
// without a network call. Any verification failure is terminal: the flow
// moves to TokenInvalid and the user must request a new link.
func (f *TokenFlow) Verify(ctx context.Context, token string) error {
	if f.state != TokenVerifying {
		return errWrongState
	}
	if token == "" {
		return ErrTokenMissing
	}

	email, err := f.svc.VerifyResetToken(ctx, token)
	if err != nil {
		f.state = TokenInvalid
		return err
	}
	f.token = token
	f.email = email
	f.state = TokenValid
	return nil
}

// Submit validates the new password locally (length, uppercase, lowercase,
// digit, matching confirmation) and then performs the reset. On a server
// failure the flow stays in TokenValid.
func (f *TokenFlow) Submit(ctx context.Context, newPassword, confirm string) error {
	if f.state != TokenValid {
		return errWrongState
	}

	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	if !strings.ContainsFunc(newPassword, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return ErrPasswordUppercase
	}
	if !strings.ContainsFunc(newPassword, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return ErrPasswordLowercase
	}
	if !strings.ContainsFunc(newPassword, isDigit) {
		return ErrPasswordDigit
	}

	if err := f.svc.ResetPasswordWithToken(ctx, f.token, newPassword); err != nil {
		return err
	}
	f.state = TokenDone
	return nil
}
