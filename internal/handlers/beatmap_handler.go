package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/services"
)

type BeatmapHandler struct {
	beatmapService *services.BeatmapService
	scoreService   *services.ScoreService
}

func NewBeatmapHandler(beatmapService *services.BeatmapService, scoreService *services.ScoreService) *BeatmapHandler {
	return &BeatmapHandler{beatmapService: beatmapService, scoreService: scoreService}
}

// Get handles GET /api/beatmaps/:id - the chart with content, its parent set,
// and the best-score-per-user leaderboard.
func (h *BeatmapHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmap id",
		})
	}

	beatmap, err := h.beatmapService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBeatmapNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Beatmap not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load beatmap",
		})
	}

	scores, err := h.scoreService.BestScores(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load leaderboard",
		})
	}

	return c.JSON(dto.BeatmapPageResponse{
		Beatmap:    dto.NewBeatmapResponse(beatmap),
		Beatmapset: dto.NewBeatmapsetResponse(&beatmap.Beatmapset),
		Scores:     dto.NewScoreResponses(scores),
	})
}

// Create handles POST /api/beatmaps - requires ownership of the target set.
func (h *BeatmapHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBeatmapRequest
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

	beatmap, err := h.beatmapService.Create(userID, &req)
	if err != nil {
		return ownershipError(c, err, "Failed to create beatmap")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBeatmapResponse(beatmap))
}

// Update handles PUT /api/beatmaps/:id - ownership-gated field updates.
func (h *BeatmapHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmap id",
		})
	}

	var req dto.UpdateBeatmapRequest
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

	beatmap, err := h.beatmapService.Update(userID, id, &req)
	if err != nil {
		return ownershipError(c, err, "Failed to update beatmap")
	}

	return c.JSON(dto.NewBeatmapResponse(beatmap))
}

// Delete handles DELETE /api/beatmaps/:id - ownership-gated.
func (h *BeatmapHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmap id",
		})
	}

	if err := h.beatmapService.Delete(userID, id); err != nil {
		return ownershipError(c, err, "Failed to delete beatmap")
	}

	return c.JSON(fiber.Map{"message": "Beatmap deleted"})
}

// ownershipError maps the conflated not-found/not-owned sentinel to a 400
// with its deliberately vague message.
func ownershipError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, services.ErrNotOwnedOrMissing) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
