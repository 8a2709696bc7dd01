package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hsm-gustavo/account-api/internal/api/user"
	"github.com/hsm-gustavo/account-api/internal/db"
)

// Request/Response structures

type RegisterRequest struct {
	Name           string `json:"name,omitempty" example:"Ann"`
	Phone          string `json:"phone,omitempty" example:"+1 555 0100"`
	Email          string `json:"email" example:"a@x.com"`
	Password       string `json:"password" example:"secret1"`
	ProfilePicture string `json:"profilePicture,omitempty" example:"ann.png"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"secret1"`
}

type MessageResponse struct {
	Message string `json:"message" example:"User registered and verification email sent"`
}

type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ProfileResponse struct {
	User *db.User `json:"user"`
}

type ErrorResponse struct {
	Error   string `json:"error,omitempty" example:"email already registered: a@x.com"`
	Message string `json:"message,omitempty" example:"User not found"`
}

const (
	msgRegistered   = "User registered and verification email sent"
	msgUserNotFound = "User not found"
	msgBadPassword  = "Invalid password"
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler wires the handlers to users and notifier. mailFrom is the
// sender address of verification emails.
func NewAuthHandler(jwtSecret string, users *user.UserService, notifier VerificationNotifier, mailFrom string) *AuthHandler {
	return &AuthHandler{
		service: &AuthService{
			UserService: users,
			Notifier:    notifier,
			MailFrom:    mailFrom,
			JWTSecret:   []byte(jwtSecret),
			TTL:         DefaultTokenTTL,
		},
	}
}

// Register godoc
// @Summary		Register a new user
// @Description	Create an account and send a verification email. The email is sent in the background.
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest	true	"User registration data"
// @Success		201		{object}	MessageResponse	"User registered"
// @Failure		400		{object}	ErrorResponse	"Invalid input or email already registered"
// @Router			/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: msgRegistered})
}

// Login godoc
// @Summary		User login
// @Description	Verify credentials and return a session token valid for one hour
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest	true	"User login credentials"
// @Success		200			{object}	TokenResponse	"Login successful"
// @Failure		400			{object}	ErrorResponse	"User not found or invalid password"
// @Failure		500			{object}	ErrorResponse	"Internal server error"
// @Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendMessage(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, db.ErrUserNotFound):
		h.sendMessage(w, http.StatusBadRequest, msgUserNotFound)
		return
	case errors.Is(err, ErrInvalidCredentials):
		h.sendMessage(w, http.StatusBadRequest, msgBadPassword)
		return
	case err != nil:
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Profile godoc
// @Summary		Get current user profile
// @Description	Return the authenticated user's record without the password
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ProfileResponse	"User profile"
// @Failure		400	{object}	ErrorResponse	"Invalid token"
// @Failure		401	{object}	ErrorResponse	"Missing token"
// @Failure		404	{object}	ErrorResponse	"User not found"
// @Failure		500	{object}	ErrorResponse	"Internal server error"
// @Router			/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, err := GetClaimsFromContext(r)
	if err != nil {
		h.sendMessage(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	u, err := h.service.UserService.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, db.ErrUserNotFound) {
		h.sendMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{User: u})
}

// Helper methods

func (h *AuthHandler) sendError(w http.ResponseWriter, statusCode int, error string) {
	writeJSON(w, statusCode, ErrorResponse{Error: error})
}

func (h *AuthHandler) sendMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
