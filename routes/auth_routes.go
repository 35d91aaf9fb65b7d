package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dchahine/chatline_backend/controllers"
)

// RegisterAuthRoutes sets up the phone verification routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	e.POST("/api/send-otp", authController.SendOTP)
	e.POST("/api/verify-otp", authController.VerifyOTP)
}
