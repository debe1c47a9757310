package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/http/respond"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	svc AuthService
	log logrus.FieldLogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to create user")
		return
	}
	respond.JSON(w, http.StatusCreated, "User created successfully", resp)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to log in")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", resp)
}
