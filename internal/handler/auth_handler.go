package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"moviewatch/internal/auth"
	"moviewatch/internal/errors"
	"moviewatch/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	jwtService    *auth.JWTService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. secureCookies marks the session
// cookie Secure and should be set in production.
func NewAuthHandler(authService service.AuthService, jwtService *auth.JWTService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = service.NormalizeEmail(r.Email)
}

func (r *LoginRequest) normalize() {
	r.Email = service.NormalizeEmail(r.Email)
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// MeResponse represents the authenticated user.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description An already registered email is rejected with 400 USER_ALREADY_EXISTS.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "user registered successfully",
		User:    UserResponse{ID: user.ID.String(), Name: user.Name, Email: user.Email},
	})
}

// Login godoc
// @Summary Login user
// @Description Returns a session token and sets it as the http-only "jwt" cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(auth.SessionCookie(token, h.jwtService.TTL(), h.secureCookies))
	return c.JSON(http.StatusOK, LoginResponse{
		User:  UserResponse{ID: user.ID.String(), Email: user.Email},
		Token: token,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie. Tokens are stateless and stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ExpiredSessionCookie(h.secureCookies))
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return errors.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, MeResponse{
		User: UserResponse{ID: user.ID.String(), Name: user.Name, Email: user.Email},
	})
}
