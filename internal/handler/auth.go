package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/config"
	"github.com/iliyamo/iot-telemetry/internal/middleware"
	"github.com/iliyamo/iot-telemetry/internal/model"
	"github.com/iliyamo/iot-telemetry/internal/repository"
	"github.com/iliyamo/iot-telemetry/internal/utils"
	"github.com/iliyamo/iot-telemetry/internal/validate"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authData is the success payload for both register and login: the user
// without its password hash, plus a signed 24-hour token.
type authData struct {
	User  model.SafeUser `json:"user"`
	Token string         `json:"token"`
}

// Register creates a new account and returns a token immediately. New
// accounts always get the "user" role; admins are provisioned by seeding.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if violations := validate.Registration(req.Name, req.Email, req.Password); len(violations) > 0 {
		return validationError(c, violations)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "Email already registered",
			})
		}
		return internalError(c, "create user", err)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return internalError(c, "issue token", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"data":    authData{User: u.Safe(), Token: access.Token},
	})
}

// Login verifies credentials and returns a fresh token. An unknown email
// and a wrong password produce the identical response so the two cases
// cannot be told apart from the outside.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invalidCredentials(c)
		}
		return internalError(c, "load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return invalidCredentials(c)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return internalError(c, "issue token", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"data":    authData{User: u.Safe(), Token: access.Token},
	})
}

// Me returns the verified identity from the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"id":    c.Get(middleware.CtxUserID),
			"email": c.Get(middleware.CtxEmail),
			"role":  c.Get(middleware.CtxRole),
		},
	})
}

func invalidCredentials(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Invalid email or password",
	})
}
