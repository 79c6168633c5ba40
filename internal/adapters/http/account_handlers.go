package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

type accountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
}

func (rt *Router) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Username       string `json:"username"`
		FullName       string `json:"full_name"`
		Phone          string `json:"phone"`
		Role           string `json:"role"`
		PostOfficeCode string `json:"post_office_code"`
		Address        string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, accountResponse{Message: "invalid json"})
		return
	}

	_, err := rt.deps.Accounts.Register(r.Context(), domain.SignupInput{
		Email:          req.Email,
		Password:       req.Password,
		Username:       req.Username,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Role:           req.Role,
		PostOfficeCode: req.PostOfficeCode,
		Address:        req.Address,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, accountResponse{Success: true, Message: "Account created successfully"})
	case domain.IsKind(err, domain.ErrAccountExists):
		writeJSON(w, http.StatusConflict, accountResponse{Message: "Email already registered"})
	case domain.IsKind(err, domain.ErrPasswordTooLong):
		writeJSON(w, http.StatusBadRequest, accountResponse{Message: "Password must be at most 72 bytes"})
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, accountResponse{Message: "Email and password are required"})
	default:
		writeError(w, r, err)
	}
}

func (rt *Router) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, accountResponse{Error: "invalid json"})
		return
	}

	session, err := rt.deps.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, accountResponse{
			Success: true,
			Message: "Login successful",
			Email:   session.Email,
			Role:    session.Role,
		})
	case domain.IsKind(err, domain.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, accountResponse{Error: "User not found"})
	case domain.IsKind(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, accountResponse{Error: "Invalid credentials"})
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, accountResponse{Error: "Email and password are required"})
	default:
		writeError(w, r, err)
	}
}
