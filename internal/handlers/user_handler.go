package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get handles GET /api/users/:id - profile page payload: user, aggregate
// stats, and scores newest-first.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, scores, err := h.userService.GetWithScores(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}

	return c.JSON(dto.UserPageResponse{
		User:   dto.NewUserResponse(user),
		Stats:  dto.NewUserStats(user),
		Scores: dto.NewScoreResponses(scores),
	})
}

// Search handles GET /api/users?search= - case-insensitive substring match.
func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.userService.Search(c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search users",
		})
	}

	resp := dto.UserListResponse{Users: make([]dto.UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = dto.NewUserResponse(&users[i])
	}
	return c.JSON(resp)
}

// ChangeName handles POST /api/me/changename.
func (h *UserHandler) ChangeName(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ChangeNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	newName, err := h.userService.ChangeName(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Name must not be empty or end in a provider name",
			})
		case errors.Is(err, services.ErrNameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Name is already taken",
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to change name",
		})
	}

	return c.JSON(dto.ChangeNameResponse{Success: true, NewName: newName})
}
