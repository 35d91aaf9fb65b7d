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

// UserController handles profile management
type UserController struct {
	repo repositories.UserRepository
}

// NewUserController creates a new user controller
func NewUserController(repo repositories.UserRepository) *UserController {
	return &UserController{repo: repo}
}

// CreateProfile creates or replaces the profile for a phone number
func (uc *UserController) CreateProfile(c echo.Context) error {
	var req models.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Name and phone number are required",
		})
	}

	user := models.User{
		PhoneNumber: req.PhoneNumber,
		Name:        utils.SanitizeInput(req.Name),
		About:       utils.SanitizeInput(req.About),
	}

	// Picture is optional; only the stored path is recorded
	if file, err := c.FormFile("file"); err == nil {
		path, err := utils.SaveProfilePicture(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		user.PicturePath = path
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	saved, err := uc.repo.Upsert(ctx, user)
	if err != nil {
		log.Printf("Failed to save profile for %s: %v", req.PhoneNumber, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to save profile",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Profile created successfully",
		User:    &saved,
	})
}

// UpdateProfile applies a partial update to an existing profile.
// Absent fields keep their stored values.
func (uc *UserController) UpdateProfile(c echo.Context) error {
	phone := c.Param("phoneNumber")
	if phone == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone number is required",
		})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	update := models.ProfileUpdate{}
	if req.Name != nil {
		name := utils.SanitizeInput(*req.Name)
		update.Name = &name
	}
	if req.About != nil {
		about := utils.SanitizeInput(*req.About)
		update.About = &about
	}
	if file, err := c.FormFile("file"); err == nil {
		path, err := utils.SaveProfilePicture(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		update.PicturePath = &path
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	user, err := uc.repo.Update(ctx, phone, update)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "User not found",
			})
		}
		log.Printf("Failed to update profile for %s: %v", phone, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to update profile",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		User:    &user,
	})
}

// GetProfile returns the profile for a phone number
func (uc *UserController) GetProfile(c echo.Context) error {
	phone := c.Param("phoneNumber")
	if phone == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone number is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	user, err := uc.repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "User not found",
			})
		}
		log.Printf("Failed to fetch profile for %s: %v", phone, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to fetch profile",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		User:    &user,
	})
}
