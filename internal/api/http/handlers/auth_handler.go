package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizenloop/internal/api/dto"
	"github.com/spec-kit/citizenloop/internal/auth"
	"github.com/spec-kit/citizenloop/internal/service"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and token verification.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"auth": dto.AuthResponse{
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt,
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
		},
	})
}

// VerifyToken handles POST /api/auth/verify-token. The token comes from the
// Authorization header or, failing that, the JSON body.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		var req dto.VerifyTokenRequest
		if len(c.Body()) > 0 {
			_ = c.BodyParser(&req)
		}
		if strings.TrimSpace(req.Token) == "" {
			return apperrors.NewUnauthorized("missing token")
		}
		token = req.Token
	}

	verified, err := h.auth.VerifyToken(token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"valid":      true,
		"subject":    verified.Subject,
		"role":       verified.Role,
		"expires_at": verified.ExpiresAt,
	})
}
