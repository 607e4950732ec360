package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

type fakeAuthAPI struct {
	login, verify, reset, verifyReset, change *floapi.AuthResult
	err                                       error
	changedWith                               string
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*floapi.AuthResult, error) {
	return f.login, f.err
}

func (f *fakeAuthAPI) VerifyLoginOTP(context.Context, string, string) (*floapi.AuthResult, error) {
	return f.verify, f.err
}

func (f *fakeAuthAPI) SendPasswordResetLink(context.Context, string) (*floapi.AuthResult, error) {
	return f.reset, f.err
}

func (f *fakeAuthAPI) VerifyForgotPassword(context.Context, string, string) (*floapi.AuthResult, error) {
	return f.verifyReset, f.err
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, _ string, password string) (*floapi.AuthResult, error) {
	f.changedWith = password
	return f.change, f.err
}

type fakeSessionStore struct {
	created []string
	revoked []string
}

func (s *fakeSessionStore) Create(_ context.Context, operatorID, email, token string) (*domain.Session, error) {
	s.created = append(s.created, operatorID+"|"+token)
	return &domain.Session{ID: "sess-1", OperatorID: operatorID, Email: email, UpstreamToken: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *fakeSessionStore) Revoke(_ context.Context, id string) error {
	s.revoked = append(s.revoked, id)
	return nil
}

func newAuth(api *fakeAuthAPI, sessions *fakeSessionStore, d events.Dispatcher) *AuthService {
	return NewAuthService(AuthDependencies{
		API:        api,
		Sessions:   sessions,
		Tokens:     auth.NewTokenManager("secret", time.Hour),
		Dispatcher: d,
		Logger:     zap.NewNop(),
	})
}

func ok200() *floapi.AuthResult {
	return &floapi.AuthResult{Status: &floapi.StatusBlock{StatusCode: 200}}
}

func TestLoginSteps(t *testing.T) {
	api := &fakeAuthAPI{login: &floapi.AuthResult{Message: "otp sent successfully"}}
	svc := newAuth(api, &fakeSessionStore{}, nil)

	res, err := svc.Login(context.Background(), "ops@flo.io", "pw")
	if err != nil || res.Step != domain.LoginStepEnterOTP {
		t.Fatalf("unexpected login result %+v %v", res, err)
	}

	api.login = &floapi.AuthResult{Status: &floapi.StatusBlock{Message: "Account locked"}}
	_, err = svc.Login(context.Background(), "ops@flo.io", "pw")
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "UNAUTHORIZED" || de.Message != "Account locked" {
		t.Fatalf("unexpected error %v", err)
	}

	api.login = &floapi.AuthResult{}
	_, err = svc.Login(context.Background(), "ops@flo.io", "pw")
	if de := apperrors.ToDomainError(err); de.Message != "Login failed" {
		t.Fatalf("expected fallback message, got %v", err)
	}

	if _, err := svc.Login(context.Background(), "", "pw"); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginUpstreamClientError(t *testing.T) {
	apiErr := &floapi.APIError{Status: 401, Message: "Invalid credentials"}
	api := &fakeAuthAPI{err: apperrors.NewUpstreamError(401, apiErr.Message, apiErr)}
	_, err := newAuth(api, &fakeSessionStore{}, nil).Login(context.Background(), "a@b.c", "x")
	if de := apperrors.ToDomainError(err); de.Code != "UNAUTHORIZED" || de.Message != "Invalid credentials" {
		t.Fatalf("unexpected error %+v", de)
	}

	api.err = apperrors.NewUpstreamError(0, "", errors.New("dial"))
	_, err = newAuth(api, &fakeSessionStore{}, nil).Login(context.Background(), "a@b.c", "x")
	if !apperrors.IsCode(err, "UPSTREAM_ERROR") {
		t.Fatalf("transport errors must pass through, got %v", err)
	}
}

func TestVerifyLoginOTPCreatesSession(t *testing.T) {
	api := &fakeAuthAPI{verify: &floapi.AuthResult{UserID: "42", AccessToken: "up-token"}}
	sessions := &fakeSessionStore{}
	d := &recordingDispatcher{}
	res, err := newAuth(api, sessions, d).VerifyLoginOTP(context.Background(), "ops@flo.io", "1234")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if res.Step != domain.LoginStepDone || res.Token == "" || res.Operator.SessionID != "sess-1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(sessions.created) != 1 || sessions.created[0] != "42|up-token" {
		t.Fatalf("unexpected sessions %v", sessions.created)
	}
	if len(d.events) != 1 || d.events[0].Type != events.EventOperatorLoggedIn {
		t.Fatalf("expected login event, got %+v", d.events)
	}

	api.verify = &floapi.AuthResult{}
	_, err = newAuth(api, sessions, nil).VerifyLoginOTP(context.Background(), "ops@flo.io", "1234")
	if de := apperrors.ToDomainError(err); de == nil || de.Message != "OTP Verification Failed." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	api := &fakeAuthAPI{reset: ok200(), verifyReset: ok200(), change: ok200()}
	svc := newAuth(api, &fakeSessionStore{}, nil)
	ctx := context.Background()

	if _, err := svc.RequestPasswordReset(ctx, "ops@flo.io"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	res, err := svc.VerifyForgotPassword(ctx, "ops@flo.io", "hash")
	if err != nil || res.Step != domain.LoginStepChangePassword {
		t.Fatalf("verify reset: %+v %v", res, err)
	}
	if _, err := svc.ChangePassword(ctx, "ops@flo.io", "new", "other"); apperrors.ToDomainError(err).Message != "Passwords don't match" {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	if _, err := svc.ChangePassword(ctx, "ops@flo.io", "new", "new"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if api.changedWith != "new" {
		t.Fatalf("unexpected password sent %q", api.changedWith)
	}

	api.reset = &floapi.AuthResult{Status: &floapi.StatusBlock{StatusCode: 400}}
	api.verifyReset = &floapi.AuthResult{}
	api.change = &floapi.AuthResult{}
	if _, err := svc.RequestPasswordReset(ctx, "ops@flo.io"); apperrors.ToDomainError(err).Message != "Password reset request failed." {
		t.Fatalf("unexpected reset error %v", err)
	}
	if _, err := svc.VerifyForgotPassword(ctx, "ops@flo.io", "hash"); apperrors.ToDomainError(err).Message != "Forget password verification error" {
		t.Fatalf("unexpected verify error %v", err)
	}
	if _, err := svc.ChangePassword(ctx, "ops@flo.io", "n", "n"); apperrors.ToDomainError(err).Message != "Password Change Failed." {
		t.Fatalf("unexpected change error %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	sessions := &fakeSessionStore{}
	d := &recordingDispatcher{}
	svc := newAuth(&fakeAuthAPI{}, sessions, d)
	if err := svc.Logout(context.Background(), &auth.Principal{OperatorID: "42", SessionID: "sess-1"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || len(d.events) != 1 || d.events[0].Type != events.EventOperatorLoggedOut {
		t.Fatalf("unexpected logout effects %v %+v", sessions.revoked, d.events)
	}
	if err := svc.Logout(context.Background(), nil); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
