package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/ishpytoing/backend/internal/config"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, cfg: cfg}
}

// Request handles GET /api/login/:provider/request - redirects to the
// provider's authorize page with the configured state token.
func (h *AuthHandler) Request(c *fiber.Ctx) error {
	provider, err := h.authService.Provider(c.Params("provider"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown provider",
		})
	}
	return c.Redirect(provider.AuthURL(h.cfg.OAuthStateSecret), fiber.StatusFound)
}

// Authorize handles POST /api/login/:provider/authorize - verifies the state
// token, completes the code exchange, and establishes a session. A mismatched
// state redirects to the unauthorized route without touching the store.
func (h *AuthHandler) Authorize(c *fiber.Ctx) error {
	var req dto.AuthorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.State != h.cfg.OAuthStateSecret {
		return c.Redirect("/api/unauthorized", fiber.StatusFound)
	}

	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Authorization code is required",
		})
	}

	resp, err := h.authService.SignIn(c.Context(), c.Params("provider"), req.Code)
	if err != nil {
		if errors.Is(err, services.ErrUnknownProvider) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Unknown provider",
			})
		}
		slog.Error("oauth sign-in failed", "provider", c.Params("provider"), "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Sign-in with provider failed",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Whoami handles GET /api/whoami - the current user re-fetched from the
// store, or an empty object for anonymous callers.
func (h *AuthHandler) Whoami(c *fiber.Ctx) error {
	userID, ok := middleware.OptionalUserID(c, h.cfg)
	if !ok {
		return c.JSON(fiber.Map{})
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		return c.JSON(fiber.Map{})
	}

	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).SendString("wtf are you doing here?")
}
