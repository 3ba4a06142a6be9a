package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/services"
)

type BeatmapsetHandler struct {
	setService *services.BeatmapsetService
}

func NewBeatmapsetHandler(setService *services.BeatmapsetService) *BeatmapsetHandler {
	return &BeatmapsetHandler{setService: setService}
}

// List handles GET /api/beatmapsets - all sets with beatmap summaries.
func (h *BeatmapsetHandler) List(c *fiber.Ctx) error {
	sets, err := h.setService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list beatmapsets",
		})
	}

	resp := dto.BeatmapsetListResponse{Beatmapsets: make([]dto.BeatmapsetResponse, len(sets))}
	for i := range sets {
		resp.Beatmapsets[i] = dto.NewBeatmapsetResponse(&sets[i])
	}
	return c.JSON(resp)
}

// Get handles GET /api/beatmapsets/:id.
func (h *BeatmapsetHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmapset id",
		})
	}

	set, err := h.setService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBeatmapsetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Beatmapset not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load beatmapset",
		})
	}

	return c.JSON(dto.NewBeatmapsetResponse(set))
}

// Create handles POST /api/beatmapsets - owner is the session user.
func (h *BeatmapsetHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBeatmapsetRequest
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

	set, err := h.setService.Create(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create beatmapset",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBeatmapsetResponse(set))
}

// Update handles PUT /api/beatmapsets/:id - ownership-gated.
func (h *BeatmapsetHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmapset id",
		})
	}

	var req dto.UpdateBeatmapsetRequest
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

	set, err := h.setService.Update(userID, id, &req)
	if err != nil {
		return ownershipError(c, err, "Failed to update beatmapset")
	}

	return c.JSON(dto.NewBeatmapsetResponse(set))
}

// Delete handles DELETE /api/beatmapsets/:id - ownership-gated, cascades to
// the set's beatmaps.
func (h *BeatmapsetHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid beatmapset id",
		})
	}

	if err := h.setService.Delete(userID, id); err != nil {
		return ownershipError(c, err, "Failed to delete beatmapset")
	}

	return c.JSON(fiber.Map{"message": "Beatmapset deleted"})
}
