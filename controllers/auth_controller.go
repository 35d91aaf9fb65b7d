package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dchahine/chatline_backend/models"
	"github.com/dchahine/chatline_backend/repositories"
	"github.com/dchahine/chatline_backend/utils"
)

// otpTTL is how long an issued verification code stays valid
const otpTTL = 5 * time.Minute

// AuthController handles phone verification
type AuthController struct {
	store repositories.OTPStore
	sms   utils.SMSSender
}

// NewAuthController creates a new auth controller
func NewAuthController(store repositories.OTPStore, sms utils.SMSSender) *AuthController {
	return &AuthController{store: store, sms: sms}
}

// SendOTP issues a verification code for a phone number and delivers it via SMS
func (ac *AuthController) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone number is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	otp, err := utils.GenerateOTP()
	if err != nil {
		log.Printf("OTP generation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate OTP",
		})
	}

	// Overwrites any previous unconsumed code for this number
	record := models.PhoneOTP{
		Phone:     req.PhoneNumber,
		Code:      otp,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := ac.store.Save(ctx, record); err != nil {
		log.Printf("Failed to store OTP for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send OTP",
		})
	}

	// The stored code is not rolled back on a delivery failure; the
	// caller retries by requesting a fresh code.
	sid, err := ac.sms.SendOTP(ctx, req.PhoneNumber, otp)
	if err != nil {
		// Provider errors stay server-side only
		log.Printf("SMS delivery to %s failed: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send OTP",
		})
	}

	log.Printf("OTP sent to %s (message %s)", req.PhoneNumber, sid)
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP sent successfully",
	})
}

// VerifyOTP checks a submitted code and consumes it on success
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone number and OTP are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	err := ac.store.Claim(ctx, req.PhoneNumber, req.OTP, time.Now())
	switch {
	case errors.Is(err, repositories.ErrOTPNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "No OTP found for this phone number. Please request a new one",
		})
	case errors.Is(err, repositories.ErrOTPExpired):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP has expired. Please request a new one",
		})
	case errors.Is(err, repositories.ErrOTPMismatch):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid OTP",
		})
	case err != nil:
		log.Printf("OTP verification for %s failed: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to verify OTP",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Phone number verified successfully",
	})
}
