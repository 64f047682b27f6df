package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/court-metrics/internal/config"
	"github.com/iliyamo/court-metrics/internal/logging"
	"github.com/iliyamo/court-metrics/internal/middleware"
	"github.com/iliyamo/court-metrics/internal/repository"
	"github.com/iliyamo/court-metrics/internal/utils"
)

const (
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid email or password"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
	Codec *utils.SessionCodec
	Log   logging.Logger
}

func NewAuthHandler(cfg config.Config, users repository.UserStore, codec *utils.SessionCodec, log logging.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Codec: codec, Log: log}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResp struct {
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// bindCredentials returns the normalized email and password, or false when
// either is missing or the body is not a JSON object.
func bindCredentials(c echo.Context) (string, string, bool) {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return "", "", false
	}
	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", "", false
	}
	return email, req.Password, true
}

// Register creates the account and signs the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	email, password, ok := bindCredentials(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgCredentialsRequired})
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	switch {
	case errors.Is(err, utils.ErrPasswordTooShort):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 8 characters"})
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at most 72 bytes"})
	case err != nil:
		h.Log.Error(c.Request().Context(), "hash password failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to create account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, email, hash); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "An account with that email already exists"})
		}
		h.Log.Error(ctx, "register failed", "email", email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to create account"})
	}

	if err := h.startSession(c, email); err != nil {
		h.Log.Error(ctx, "issue session failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to create account"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"email": email})
}

// Login verifies credentials.  Unknown email and wrong password get the
// same answer so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	email, password, ok := bindCredentials(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgCredentialsRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
		}
		h.Log.Error(ctx, "login lookup failed", "email", email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to login"})
	}
	if !utils.VerifyPassword(u.HashedPassword, password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
	}

	if err := h.startSession(c, u.Email); err != nil {
		h.Log.Error(ctx, "issue session failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unable to login"})
	}
	return c.JSON(http.StatusOK, echo.Map{"email": u.Email})
}

// Logout clears the session cookie.  Tokens are stateless, so a copied
// token stays valid until it expires.
func (h *AuthHandler) Logout(c echo.Context) error {
	ck := h.cookie("")
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Me reports the signed-in user.  It runs behind SessionAuth.
func (h *AuthHandler) Me(c echo.Context) error {
	p, ok := middleware.Session(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, meResp{
		Email:     p.Email,
		IssuedAt:  time.UnixMilli(p.IssuedAt).UTC(),
		ExpiresAt: p.ExpiresAt(h.Codec.TTL()),
	})
}

func (h *AuthHandler) startSession(c echo.Context, email string) error {
	token, _, err := h.Codec.Create(email)
	if err != nil {
		return err
	}
	c.SetCookie(h.cookie(token))
	return nil
}

func (h *AuthHandler) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.Codec.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
