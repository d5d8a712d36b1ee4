package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	perrors "playroom/errors"
)

type registerBody struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.accounts.Register(body.Email, body.Password, body.DisplayName)
	switch {
	case errors.Is(err, perrors.ErrUserAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, perrors.ErrInvalidPassword), errors.Is(err, perrors.ErrInvalidRegistration):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.log.Error("Registration failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registration failed"})
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: string(token)})
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.accounts.Login(body.Email, body.Password)
	switch {
	case errors.Is(err, perrors.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.log.Error("Login failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
