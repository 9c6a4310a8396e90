package reset_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"taskmaster/internal/api"
	"taskmaster/internal/reset"
	"taskmaster/internal/testutil"
)

func TestOTPFlowSubmitEmail(t *testing.T) {
	svc := testutil.NewFakeService()
	flow := reset.NewOTPFlow(svc)
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, ""); !errors.Is(err, reset.ErrEmailRequired) {
		t.Fatalf("SubmitEmail(\"\") = %v, want ErrEmailRequired", err)
	}
	if svc.RequestResetCalls != 0 {
		t.Errorf("RequestResetCalls = %d after empty email, want 0", svc.RequestResetCalls)
	}
	if flow.State() != reset.OTPEmailEntry {
		t.Errorf("state = %v after empty email, want OTPEmailEntry", flow.State())
	}

	if err := flow.SubmitEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}
	if svc.RequestResetCalls != 1 {
		t.Errorf("RequestResetCalls = %d, want 1", svc.RequestResetCalls)
	}
	if flow.State() != reset.OTPCodeEntry {
		t.Errorf("state = %v, want OTPCodeEntry", flow.State())
	}
	if flow.Email() != "ana@example.com" {
		t.Errorf("Email() = %q", flow.Email())
	}
}

func TestOTPFlowSubmitEmailServerError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RequestResetErr = &api.Error{Status: http.StatusBadGateway, Detail: "mail service unavailable"}
	flow := reset.NewOTPFlow(svc)

	if err := flow.SubmitEmail(context.Background(), "ana@example.com"); err == nil {
		t.Fatal("SubmitEmail succeeded, want error")
	}
	if flow.State() != reset.OTPEmailEntry {
		t.Errorf("state = %v after server error, want OTPEmailEntry", flow.State())
	}
}

func TestOTPFlowSubmitLocalValidation(t *testing.T) {
	tests := []struct {
		name                  string
		otp, password, retype string
		want                  error
	}{
		{"empty otp", "", "P@ssw0rd1", "P@ssw0rd1", reset.ErrOTPRequired},
		{"letters only", "abcdef", "P@ssw0rd1", "P@ssw0rd1", reset.ErrOTPRequired},
		{"too short", "12345", "P@ssw0rd1", "P@ssw0rd1", reset.ErrOTPLength},
		{"too long", "1234567", "P@ssw0rd1", "P@ssw0rd1", reset.ErrOTPLength},
		{"mismatch", "123456", "P@ssw0rd1", "different", reset.ErrPasswordMismatch},
		{"short password", "123456", "Ab1", "Ab1", reset.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			flow := reset.NewOTPFlow(svc)
			ctx := context.Background()
			if err := flow.SubmitEmail(ctx, "ana@example.com"); err != nil {
				t.Fatalf("SubmitEmail: %v", err)
			}

			if err := flow.Submit(ctx, tt.otp, tt.password, tt.retype); !errors.Is(err, tt.want) {
				t.Fatalf("Submit = %v, want %v", err, tt.want)
			}
			if svc.ResetCalls != 0 {
				t.Errorf("ResetCalls = %d after local rejection, want 0", svc.ResetCalls)
			}
			if flow.State() != reset.OTPCodeEntry {
				t.Errorf("state = %v after local rejection, want OTPCodeEntry", flow.State())
			}
		})
	}
}

func TestOTPFlowSubmit(t *testing.T) {
	svc := testutil.NewFakeService()
	flow := reset.NewOTPFlow(svc)
	ctx := context.Background()
	if err := flow.SubmitEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}

	// Formatting characters in the OTP are stripped before validation.
	if err := flow.Submit(ctx, "12-34-56", "P@ssw0rd1", "P@ssw0rd1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.State() != reset.OTPDone {
		t.Errorf("state = %v, want OTPDone", flow.State())
	}
	if svc.ResetCalls != 1 {
		t.Errorf("ResetCalls = %d, want 1", svc.ResetCalls)
	}
	if svc.LastReset.Email != "ana@example.com" || svc.LastReset.OTP != "123456" || svc.LastReset.NewPassword != "P@ssw0rd1" {
		t.Errorf("LastReset = %+v", svc.LastReset)
	}
}

func TestOTPFlowSubmitServerError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ResetErr = &api.Error{Status: http.StatusBadRequest, Detail: "invalid or expired OTP"}
	flow := reset.NewOTPFlow(svc)
	ctx := context.Background()
	if err := flow.SubmitEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}

	if err := flow.Submit(ctx, "123456", "P@ssw0rd1", "P@ssw0rd1"); err == nil {
		t.Fatal("Submit succeeded, want error")
	}
	if flow.State() != reset.OTPCodeEntry {
		t.Errorf("state = %v after server error, want OTPCodeEntry", flow.State())
	}

	// The step is retryable after a server rejection.
	svc.ResetErr = nil
	if err := flow.Submit(ctx, "654321", "P@ssw0rd1", "P@ssw0rd1"); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if flow.State() != reset.OTPDone {
		t.Errorf("state = %v, want OTPDone", flow.State())
	}
}
