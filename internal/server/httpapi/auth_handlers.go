package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  models.UserProfile `json:"user"`
	Token string             `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			s.writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error(r.Context(), "failed to register user", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeData(w, http.StatusCreated, authResponse{User: user.Profile(), Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := s.validateRequest(req); msgs != nil {
		s.writeValidationError(w, msgs)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "failed to log user in", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeData(w, http.StatusOK, authResponse{User: user.Profile(), Token: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := r.Context().Value(userContextKey).(models.UserProfile)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	s.writeData(w, http.StatusOK, profile)
}
