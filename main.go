package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/dchahine/chatline_backend/config"
	"github.com/dchahine/chatline_backend/controllers"
	"github.com/dchahine/chatline_backend/middleware"
	"github.com/dchahine/chatline_backend/repositories"
	"github.com/dchahine/chatline_backend/routes"
	"github.com/dchahine/chatline_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// SMS provider credentials are required; LoadSMSConfig exits when missing
	smsConfig := config.LoadSMSConfig()
	smsService := utils.NewTwilioService(smsConfig.AccountSID, smsConfig.AuthToken, smsConfig.FromNumber)

	// Stores fall back to process memory when no backing service is configured
	var otpStore repositories.OTPStore = repositories.NewMemoryOTPStore()
	if redisClient := config.ConnectRedis(); redisClient != nil {
		otpStore = repositories.NewRedisOTPStore(redisClient)
	}

	var userRepo repositories.UserRepository = repositories.NewMemoryUserRepository()
	if client := config.ConnectDB(); client != nil {
		userRepo = repositories.NewMongoUserRepository(client)
	}

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(middleware.GlobalCORS())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Chatline Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	// Initialize controllers
	authController := controllers.NewAuthController(otpStore, smsService)
	userController := controllers.NewUserController(userRepo)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterUserRoutes(e, userController)

	// Sweep out expired codes that are never looked at again
	go func() {
		for {
			time.Sleep(time.Minute)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if removed, err := otpStore.PurgeExpired(ctx, time.Now()); err != nil {
				log.Printf("OTP sweep failed: %v", err)
			} else if removed > 0 {
				log.Printf("OTP sweep removed %d expired codes", removed)
			}
			cancel()
		}
	}()

	// Ensure uploads directory exists
	if err := utils.InitializeStorage(); err != nil {
		log.Fatal(err)
	}
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
