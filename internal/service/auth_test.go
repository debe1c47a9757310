package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/storage"
	"github.com/Munionn/Airport-sub002/internal/storage/mocks"
)

func newTestAuth() (*Auth, *mocks.MockUserStore, *test.Hook) {
	store := new(mocks.MockUserStore)
	log, hook := test.NewNullLogger()
	svc := NewAuth(store, log)
	svc.cost = bcrypt.MinCost
	return svc, store, hook
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  "s3cret-pass",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

var passengerRoles = []models.Role{{ID: 4, Name: models.RolePassenger, Permissions: []models.Permission{models.PermFlightsRead}}}

func TestAuth_Register(t *testing.T) {
	svc, store, hook := newTestAuth()
	req := validRegister()

	store.On("ExistsByEmailOrUsername", mock.Anything, "jdoe@example.com", "jdoe").Return(false, nil)
	store.On("CreateUser", mock.Anything,
		mock.MatchedBy(func(u models.User) bool {
			return u.Username == "jdoe" && u.IsActive &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
		}),
		mock.MatchedBy(func(p models.Passenger) bool {
			return p.Email == "jdoe@example.com" && p.FirstName == "Jane" &&
				p.Phone == nil && p.DateOfBirth == nil && p.PassportNumber == nil
		}),
		models.DefaultRole,
	).Return(models.User{ID: 7, Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "hash"}, nil)
	store.On("RolesForUser", mock.Anything, int64(7)).Return(passengerRoles, nil)

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, passengerRoles, resp.Roles)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hash")
	assert.NotContains(t, string(body), "password")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "user_registered", hook.LastEntry().Data["event"])
	store.AssertExpectations(t)
}

func TestAuth_Register_KeepsSuppliedProfileFields(t *testing.T) {
	svc, store, _ := newTestAuth()
	req := validRegister()
	phone, dob, passport := " +15550100 ", "1990-04-12", "X1234567"
	req.Phone, req.DateOfBirth, req.PassportNumber = &phone, &dob, &passport

	store.On("ExistsByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("CreateUser", mock.Anything, mock.Anything,
		mock.MatchedBy(func(p models.Passenger) bool {
			return p.Phone != nil && *p.Phone == "+15550100" &&
				p.DateOfBirth != nil && p.DateOfBirth.Format(dateLayout) == "1990-04-12" &&
				p.PassportNumber != nil && *p.PassportNumber == "X1234567"
		}),
		models.DefaultRole,
	).Return(models.User{ID: 8}, nil)
	store.On("RolesForUser", mock.Anything, int64(8)).Return(passengerRoles, nil)

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAuth_Register_Duplicate(t *testing.T) {
	svc, store, _ := newTestAuth()
	store.On("ExistsByEmailOrUsername", mock.Anything, "jdoe@example.com", "jdoe").Return(true, nil)

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrConflict)
	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_Register_UniqueViolationIsConflict(t *testing.T) {
	svc, store, _ := newTestAuth()
	store.On("ExistsByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.User{}, fmt.Errorf("%w: users_email_key", storage.ErrAlreadyExists))

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuth_Register_Validation(t *testing.T) {
	badDate := "12/04/1990"
	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"missing username", func(r *dto.RegisterRequest) { r.Username = "  " }},
		{"missing email", func(r *dto.RegisterRequest) { r.Email = "" }},
		{"invalid email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"missing first name", func(r *dto.RegisterRequest) { r.FirstName = "" }},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short" }},
		{"password over 72 bytes", func(r *dto.RegisterRequest) { r.Password = strings.Repeat("p", 73) }},
		{"bad date of birth", func(r *dto.RegisterRequest) { r.DateOfBirth = &badDate }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestAuth()
			req := validRegister()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrBadRequest)
			store.AssertNotCalled(t, "ExistsByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: 7, Email: "jdoe@example.com", IsActive: true, PasswordHash: string(hash)}

	tests := []struct {
		name     string
		req      dto.LoginRequest
		findUser models.User
		findErr  error
		wantErr  error
	}{
		{
			name:     "valid credentials",
			req:      dto.LoginRequest{Email: "jdoe@example.com", Password: "s3cret-pass"},
			findUser: user,
		},
		{
			name:     "wrong password",
			req:      dto.LoginRequest{Email: "jdoe@example.com", Password: "wrong-pass"},
			findUser: user,
			wantErr:  ErrUnauthorized,
		},
		{
			name:    "unknown or inactive user",
			req:     dto.LoginRequest{Email: "ghost@example.com", Password: "s3cret-pass"},
			findErr: storage.ErrNotFound,
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestAuth()
			store.On("FindActiveByEmail", mock.Anything, tt.req.Email).Return(tt.findUser, tt.findErr)
			store.On("RolesForUser", mock.Anything, int64(7)).Return(passengerRoles, nil).Maybe()

			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), resp.User.ID)

			body, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.NotContains(t, string(body), string(hash))
		})
	}
}

func TestAuth_Login_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuth()
	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "jdoe@example.com"})
	assert.ErrorIs(t, err, ErrBadRequest)
}
