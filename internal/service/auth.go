package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

const (
	minPasswordLength = 8
	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72
)

const dateLayout = "2006-01-02"

// Auth registers users and verifies credentials.
type Auth struct {
	users storage.UserStore
	log   logrus.FieldLogger
	cost  int
}

// NewAuth constructs the auth service.
func NewAuth(users storage.UserStore, log logrus.FieldLogger) *Auth {
	return &Auth{users: users, log: log, cost: bcrypt.DefaultCost}
}

// Register creates a user with the default role and a linked passenger profile.
func (a *Auth) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	req = normalizeRegister(req)
	if err := validateRegister(req); err != nil {
		return dto.AuthResponse{}, err
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return dto.AuthResponse{}, badRequest("date_of_birth must be formatted as YYYY-MM-DD")
		}
		dob = &parsed
	}

	exists, err := a.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return dto.AuthResponse{}, conflict("user with this email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		DateOfBirth:    dob,
		PassportNumber: req.PassportNumber,
		IsActive:       true,
		PasswordHash:   string(hash),
	}
	passenger := models.Passenger{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    dob,
		PassportNumber: req.PassportNumber,
	}

	created, err := a.users.CreateUser(ctx, user, passenger, models.DefaultRole)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return dto.AuthResponse{}, conflict("user with this email or username already exists")
		}
		return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	roles, err := a.users.RolesForUser(ctx, created.ID)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("load roles: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"event":   "user_registered",
		"user_id": created.ID,
		"role":    models.DefaultRole,
	}).Info("user registered")

	return dto.AuthResponse{User: created, Roles: roles}, nil
}

// Login verifies an active user's credentials. No token is issued.
func (a *Auth) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return dto.AuthResponse{}, badRequest("email and password are required")
	}

	user, err := a.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.AuthResponse{}, unauthorized("invalid credentials")
		}
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		a.log.WithField("user_id", user.ID).Debug("login rejected: password mismatch")
		return dto.AuthResponse{}, unauthorized("invalid credentials")
	}

	roles, err := a.users.RolesForUser(ctx, user.ID)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("load roles: %w", err)
	}
	return dto.AuthResponse{User: user, Roles: roles}, nil
}

func normalizeRegister(req dto.RegisterRequest) dto.RegisterRequest {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = optional(req.Phone)
	req.DateOfBirth = optional(req.DateOfBirth)
	req.PassportNumber = optional(req.PassportNumber)
	return req
}

func validateRegister(req dto.RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return badRequest("username, email, first_name and last_name are required")
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return badRequest("email is not valid")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength || !utf8.ValidString(req.Password) {
		return badRequest("password must be at least %d characters", minPasswordLength)
	}
	if len(req.Password) > maxPasswordBytes {
		return badRequest("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// trimmed trims s, keeping blank values so a patch can clear a column.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
