package reset

import (
	"context"
	"errors"

	"taskmaster/internal/service"
)

// Local validation errors. Inputs failing these checks are rejected before
// any network call.
var (
	ErrEmailRequired    = errors.New("email address required")
	ErrOTPRequired      = errors.New("OTP required")
	ErrOTPLength        = errors.New("OTP must be 6 digits")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)

var errWrongState = errors.New("operation not valid in current flow state")

// OTPState is the state of an OTP reset flow.
type OTPState int

const (
	// OTPEmailEntry awaits the account email.
	OTPEmailEntry OTPState = iota
	// OTPCodeEntry awaits the emailed code and the new password.
	OTPCodeEntry
	// OTPDone is terminal; the password was reset.
	OTPDone
)

// OTPFlow is the email -> code -> new password reset flow. On any failure
// the flow stays in its current state so the step can be retried.
type OTPFlow struct {
	svc   service.Service
	state OTPState
	email string
}

// NewOTPFlow creates a flow in the email-entry state.
func NewOTPFlow(svc service.Service) *OTPFlow {
	return &OTPFlow{svc: svc, state: OTPEmailEntry}
}

// State returns the current flow state.
func (f *OTPFlow) State() OTPState { return f.state }

// Email returns the address the OTP was requested for.
func (f *OTPFlow) Email() string { return f.email }

// SubmitEmail requests an OTP for the given address and advances to code
// entry on success.
func (f *OTPFlow) SubmitEmail(ctx context.Context, email string) error {
	if f.state != OTPEmailEntry {
		return errWrongState
	}
	if email == "" {
		return ErrEmailRequired
	}
	if err := f.svc.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	f.email = email
	f.state = OTPCodeEntry
	return nil
}

// Submit validates the OTP and password locally, then performs the reset.
// The OTP must be exactly 6 digits, the password at least 8 characters, and
// the confirmation must match; otherwise no network call is made.
func (f *OTPFlow) Submit(ctx context.Context, otp, newPassword, confirm string) error {
	if f.state != OTPCodeEntry {
		return errWrongState
	}

	otp = SanitizeOTP(otp)
	if otp == "" {
		return ErrOTPRequired
	}
	if len(otp) != 6 {
		return ErrOTPLength
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	if err := f.svc.ResetPassword(ctx, f.email, otp, newPassword); err != nil {
		return err
	}
	f.state = OTPDone
	return nil
}
