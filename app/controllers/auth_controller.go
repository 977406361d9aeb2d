package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskboard/app/logging"
	"taskboard/app/models"
	"taskboard/app/services"
)

// AuthController handles registration and login.
type AuthController struct {
	Service *services.AuthService
	Log     *logging.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(service *services.AuthService, log *logging.Logger) *AuthController {
	return &AuthController{Service: service, Log: log}
}

// Register handles POST /register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := c.Service.Register(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrUserExists):
		writeMessage(w, http.StatusConflict, "User already exists")
	case err != nil:
		c.Log.Errorf("register %q: %v", req.Username, err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
	default:
		writeMessage(w, http.StatusCreated, "Registered successfully")
	}
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	username, err := c.Service.Login(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		c.Log.Errorf("login %q: %v", req.Username, err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, models.LoginResponse{Username: username})
	}
}
