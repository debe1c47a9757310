package dto

import "github.com/Munionn/Airport-sub002/internal/models"

type RegisterRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          *string `json:"phone,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	PassportNumber *string `json:"passport_number,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login. No token is issued.
type AuthResponse struct {
	User  models.User   `json:"user"`
	Roles []models.Role `json:"roles"`
}
