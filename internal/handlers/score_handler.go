package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/services"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
}

func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Submit handles POST /api/scores - the submitting user is always the session
// user, never a payload field.
func (h *ScoreHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if fields := req.Validate(); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}

	score, err := h.scoreService.Submit(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBeatmapNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Beatmap does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit score",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewScoreResponse(score))
}

// GetReplay handles GET /api/scores/:id/replay.
func (h *ScoreHandler) GetReplay(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid score id",
		})
	}

	replay, err := h.scoreService.GetReplay(id)
	if err != nil {
		if errors.Is(err, services.ErrReplayNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Replay not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load replay",
		})
	}

	return c.JSON(dto.ReplayResponse{ScoreID: replay.ScoreID, Data: replay.Data})
}
