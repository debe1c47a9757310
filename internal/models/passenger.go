package models

import "time"

// Passenger is the traveller profile created alongside a registered user.
// Identity fields the user did not supply stay nil.
type Passenger struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	PassportNumber *string    `json:"passport_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
