package dto

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest payload for the second login step.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ForgotPasswordRequest payload for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyForgotPasswordRequest payload carrying the hash from the reset link.
type VerifyForgotPasswordRequest struct {
	Email   string `json:"email"`
	OTPHash string `json:"otphash"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
