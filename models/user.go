package models

import (
	"time"
)

// User represents a profile record keyed by phone number
type User struct {
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber"`
	Name        string    `json:"name" bson:"name"`
	About       string    `json:"about,omitempty" bson:"about,omitempty"`
	PicturePath string    `json:"picturePath,omitempty" bson:"picturePath,omitempty"`
	CreatedAt   time.Time `json:"-" bson:"createdAt"`
	UpdatedAt   time.Time `json:"-" bson:"updatedAt"`
}

// ProfileUpdate carries a partial profile update. Nil fields keep
// their stored values.
type ProfileUpdate struct {
	Name        *string
	About       *string
	PicturePath *string
}

// CreateProfileRequest is the payload for creating a profile
type CreateProfileRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	About       string `json:"about" form:"about"`
}

// UpdateProfileRequest is the payload for a partial profile update
type UpdateProfileRequest struct {
	Name  *string `json:"name" form:"name"`
	About *string `json:"about" form:"about"`
}

// Response is the standard API response envelope
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}
