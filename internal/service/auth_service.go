package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

// SessionStore creates and revokes operator sessions.
type SessionStore interface {
	Create(ctx context.Context, operatorID, email, upstreamToken string) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
}

// AuthService coordinates the OTP login and password reset flows.
type AuthService struct {
	api        AuthAPI
	sessions   SessionStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	API        AuthAPI
	Sessions   SessionStore
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// LoginResult tells the console which screen comes next.
type LoginResult struct {
	Step      domain.LoginStep `json:"step"`
	Message   string           `json:"message,omitempty"`
	Token     string           `json:"token,omitempty"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
	Operator  *auth.Principal  `json:"operator,omitempty"`
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		api:        deps.API,
		sessions:   deps.Sessions,
		tokenMgr:   deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Login checks credentials; the Flo API then emails an OTP.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, authFailure(err, "Login failed")
	}
	if res.Message != floapi.OTPSentMessage {
		msg := res.StatusMessage()
		if msg == "" {
			msg = "Login failed"
		}
		return nil, apperrors.NewUnauthorized(msg)
	}
	return &LoginResult{Step: domain.LoginStepEnterOTP, Message: res.Message}, nil
}

// VerifyLoginOTP completes login and opens a console session.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return nil, apperrors.NewValidationError("email and otp are required", nil)
	}

	res, err := s.api.VerifyLoginOTP(ctx, email, otp)
	if err != nil {
		return nil, authFailure(err, "OTP Verification Failed.")
	}
	if res.UserID == "" {
		return nil, apperrors.NewUnauthorized("OTP Verification Failed.")
	}

	operatorID := string(res.UserID)
	sess, err := s.sessions.Create(ctx, operatorID, email, res.AccessToken)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(operatorID, sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	actor := events.Actor{OperatorID: operatorID, Email: email}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventOperatorLoggedIn, actor, "operator", []string{operatorID}, nil))

	return &LoginResult{
		Step:      domain.LoginStepDone,
		Token:     token,
		ExpiresAt: &expiresAt,
		Operator:  &auth.Principal{OperatorID: operatorID, Email: email, SessionID: sess.ID},
	}, nil
}

// RequestPasswordReset emails a reset link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	res, err := s.api.SendPasswordResetLink(ctx, email)
	if err != nil {
		return nil, authFailure(err, "Password reset request failed.")
	}
	if !res.Succeeded() {
		return nil, apperrors.NewValidationError("Password reset request failed.", nil)
	}
	return &LoginResult{Step: domain.LoginStepEnterOTP, Message: "Password reset link sent"}, nil
}

// VerifyForgotPassword checks the reset link and unlocks the password form.
func (s *AuthService) VerifyForgotPassword(ctx context.Context, email, otpHash string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(otpHash) == "" {
		return nil, apperrors.NewValidationError("email and otphash are required", nil)
	}
	res, err := s.api.VerifyForgotPassword(ctx, email, otpHash)
	if err != nil {
		return nil, authFailure(err, "Forget password verification error")
	}
	if !res.Succeeded() {
		return nil, apperrors.NewUnauthorized("Forget password verification error")
	}
	return &LoginResult{Step: domain.LoginStepChangePassword}, nil
}

// ChangePassword sets the new password once both entries match.
func (s *AuthService) ChangePassword(ctx context.Context, email, password, confirm string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if password != confirm {
		return nil, apperrors.NewValidationError("Passwords don't match", nil)
	}
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}
	res, err := s.api.ChangePassword(ctx, email, confirm)
	if err != nil {
		return nil, authFailure(err, "Password Change Failed.")
	}
	if !res.Succeeded() {
		return nil, apperrors.NewValidationError("Password Change Failed.", nil)
	}
	return &LoginResult{Step: domain.LoginStepDone, Message: "Password changed"}, nil
}

// Logout ends the operator's session.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return apperrors.NewUnauthorized("not logged in")
	}
	if err := s.sessions.Revoke(ctx, principal.SessionID); err != nil {
		return apperrors.NewInternalError(err)
	}
	actor := events.Actor{OperatorID: principal.OperatorID, Email: principal.Email}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventOperatorLoggedOut, actor, "operator", []string{principal.OperatorID}, nil))
	return nil
}

// authFailure turns upstream client errors into 401s carrying the upstream
// message. Server errors pass through unchanged.
func authFailure(err error, fallback string) error {
	status := floapi.StatusOf(err)
	if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
		return err
	}
	msg := fallback
	if de := apperrors.ToDomainError(err); de != nil && de.Message != "" && de.Message != "upstream request failed" {
		msg = de.Message
	}
	return apperrors.NewUnauthorized(msg)
}
