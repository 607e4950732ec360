package floapi

import (
	"context"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// OTPSentMessage is what the Flo API answers when a login OTP went out.
const OTPSentMessage = "otp sent successfully"

// StatusBlock is the nested status object some auth endpoints return.
type StatusBlock struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// AuthResult covers the loosely shaped responses of the auth endpoints.
type AuthResult struct {
	Message     string            `json:"message"`
	Status      *StatusBlock      `json:"status"`
	UserID      domain.FlexString `json:"userId"`
	AccessToken string            `json:"accessToken"`
}

// Succeeded reports whether the nested status block carries a 200.
func (r *AuthResult) Succeeded() bool {
	return r != nil && r.Status != nil && r.Status.StatusCode == 200
}

// StatusMessage returns the nested status message, if any.
func (r *AuthResult) StatusMessage() string {
	if r == nil || r.Status == nil {
		return ""
	}
	return r.Status.Message
}

// Login starts the password + OTP login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "auth.login", "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyLoginOTP exchanges the emailed OTP for an access token.
func (c *Client) VerifyLoginOTP(ctx context.Context, email, otp string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "auth.login_verify", "/auth/login/verify", map[string]string{
		"email": email,
		"otp":   otp,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendPasswordResetLink emails a reset link to the operator.
func (c *Client) SendPasswordResetLink(ctx context.Context, email string) (*AuthResult, error) {
	var out AuthResult
	if err := c.post(ctx, "auth.forget_password", "/auth/forget-password", map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyForgotPassword checks the hash carried by the reset link.
func (c *Client) VerifyForgotPassword(ctx context.Context, email, otpHash string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "auth.forget_password_verify", "/auth/forget-password-verify", map[string]string{
		"email":   email,
		"otphash": otpHash,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword sets a new password after a verified reset.
func (c *Client) ChangePassword(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "auth.change_password", "/auth/change-password", map[string]string{
		"email":    email,
		"password": password,
		"type":     "forget",
		"userid":   "",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
