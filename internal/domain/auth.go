package domain

import "time"

// Session is an authenticated operator's console session. UpstreamToken is
// the Flo API bearer token obtained at OTP verification.
type Session struct {
	ID            string
	OperatorID    string
	Email         string
	UpstreamToken string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// LoginStep names the next screen of the login flow.
type LoginStep string

const (
	LoginStepEnterOTP       LoginStep = "enter-otp"
	LoginStepChangePassword LoginStep = "change-password"
	LoginStepDone           LoginStep = "done"
)
