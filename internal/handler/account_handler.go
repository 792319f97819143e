package handler

import (
	"net/http"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/service"

	"github.com/rs/zerolog"
)

type staffLoginRequest struct {
	Password string `json:"password"`
}

// AccountHandler handles customer identity and staff login.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("handler", "account").Logger(),
	}
}

// Login handles POST /api/account/login requests.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(r, &creds, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Login(r.Context(), creds)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Register handles POST /api/account/register requests.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := decodeJSON(r, &reg, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), reg)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Google handles POST /api/account/google requests.
func (h *AccountHandler) Google(w http.ResponseWriter, r *http.Request) {
	var token model.GoogleToken
	if err := decodeJSON(r, &token, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	user, err := h.service.GoogleLogin(r.Context(), token)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/account/logout requests.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/account/profile requests.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Profile(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/account/profile requests.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update model.ProfileUpdate
	if err := decodeJSON(r, &update, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), update)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// StaffLogin handles POST /api/staff/login requests.
func (h *AccountHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req staffLoginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	staff, err := h.service.StaffLogin(r.Context(), req.Password)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

// StaffLogout handles POST /api/staff/logout requests.
func (h *AccountHandler) StaffLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.StaffLogout(r.Context()); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session requests.
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.State())
}
