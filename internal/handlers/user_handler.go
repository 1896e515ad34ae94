package handlers

import (
	"errors"
	"net/http"

	"github.com/Dias221467/Storefront/internal/config"
	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/services"
	jwtutil "github.com/Dias221467/Storefront/pkg/jwt"
	"github.com/Dias221467/Storefront/pkg/middleware"
	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
	Cookies *securecookie.SecureCookie
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config, cookies *securecookie.SecureCookie) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
		Cookies: cookies,
	}
}

// SignupHandler handles user registration.
func (h *UserHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Failed to decode signup request")
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.Service.Signup(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidSignup):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.WithError(err).Error("Failed to register user")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// LoginHandler issues an access token in the body and in a signed cookie.
func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to authenticate user")
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := middleware.SetSignedCookie(w, h.Cookies, middleware.TokenCookie, token, h.Config.TokenExpiry); err != nil {
		log.WithError(err).Warn("Failed to set token cookie")
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *UserHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	middleware.ClearCookie(w, middleware.TokenCookie)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// MeHandler returns the authenticated user.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
