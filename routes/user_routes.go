package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dchahine/chatline_backend/controllers"
)

// RegisterUserRoutes sets up the profile routes
func RegisterUserRoutes(e *echo.Echo, userController *controllers.UserController) {
	e.POST("/api/profile", userController.CreateProfile)
	e.PUT("/api/profile/:phoneNumber", userController.UpdateProfile)
	e.GET("/api/profile/:phoneNumber", userController.GetProfile)
}
