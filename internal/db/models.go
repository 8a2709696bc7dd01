package db

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultProfilePicture is stored when a user registers without a picture.
const DefaultProfilePicture = "default.png"

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
}

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
