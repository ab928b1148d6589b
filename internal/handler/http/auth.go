package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/service"
	"github.com/MKhiriev/fishtrack/internal/store"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/MKhiriev/fishtrack/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			http.Error(w, "email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	tokenPair, err := h.services.AuthService.CreateTokenPair(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tokenPair, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no user was found/wrong password")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	tokenPair, err := h.services.AuthService.CreateTokenPair(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tokenPair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var refreshRequest models.TokenRefresh
	if err := json.NewDecoder(r.Body).Decode(&refreshRequest); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	tokenPair, err := h.services.AuthService.RefreshTokenPair(ctx, refreshRequest.RefreshToken)
	if err != nil {
		log.Err(err).Msg("token refresh failed")
		http.Error(w, "token refresh failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, tokenPair, http.StatusOK)
}

// passwordReset acknowledges every syntactically valid request with the same
// neutral answer, so the endpoint cannot be used to probe which emails are
// registered.
func (h *Handler) passwordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, user); err != nil {
		log.Err(err).Msg("password reset failed")
	}

	utils.WriteJSON(w, map[string]string{
		"status": "ok",
	}, http.StatusOK)
}
