package models

import (
	"time"
)

// PhoneOTP represents a pending verification code for a phone number
type PhoneOTP struct {
	Phone     string    `bson:"phone"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// Expired reports whether the code is no longer valid at the given time
func (o PhoneOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// SendOTPRequest is the payload for requesting a verification code
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
}

// VerifyOTPRequest is the payload for submitting a verification code
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	OTP         string `json:"otp" form:"otp" validate:"required"`
}
