package services

import (
	"errors"
	"fmt"

	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/models"
	"gorm.io/gorm"
)

var ErrBeatmapNotFound = errors.New("beatmap not found")

type BeatmapService struct {
	db *gorm.DB
}

func NewBeatmapService(db *gorm.DB) *BeatmapService {
	return &BeatmapService{db: db}
}

// Get loads a beatmap with its full content plus the parent set (owner and
// sibling summaries included, for the beatmap page).
func (s *BeatmapService) Get(id int) (*models.Beatmap, error) {
	var beatmap models.Beatmap
	err := s.db.Preload("Beatmapset.Owner").
		Preload("Beatmapset.Beatmaps", beatmapSummaries).
		First(&beatmap, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeatmapNotFound
		}
		return nil, fmt.Errorf("failed to load beatmap: %w", err)
	}
	return &beatmap, nil
}

// Create inserts a beatmap into a set the caller owns.
func (s *BeatmapService) Create(ownerID string, req *dto.CreateBeatmapRequest) (*models.Beatmap, error) {
	if err := s.checkSetOwnership(ownerID, req.BeatmapsetID); err != nil {
		return nil, err
	}

	beatmap := models.Beatmap{
		BeatmapsetID: req.BeatmapsetID,
		Diffname:     req.Diffname,
		Content:      req.Content,
		Kpm:          req.Kpm,
	}
	if err := s.db.Create(&beatmap).Error; err != nil {
		return nil, fmt.Errorf("failed to create beatmap: %w", err)
	}
	return &beatmap, nil
}

func (s *BeatmapService) Update(ownerID string, id int, req *dto.UpdateBeatmapRequest) (*models.Beatmap, error) {
	beatmap, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Diffname != nil {
		updates["diffname"] = *req.Diffname
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Kpm != nil {
		updates["kpm"] = *req.Kpm
	}

	if len(updates) > 0 {
		if err := s.db.Model(beatmap).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update beatmap: %w", err)
		}
	}
	return beatmap, nil
}

func (s *BeatmapService) Delete(ownerID string, id int) error {
	beatmap, err := s.findOwned(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(beatmap).Error; err != nil {
		return fmt.Errorf("failed to delete beatmap: %w", err)
	}
	return nil
}

// findOwned resolves a beatmap only when its parent set belongs to ownerID;
// any other outcome is the conflated ownership error.
func (s *BeatmapService) findOwned(ownerID string, id int) (*models.Beatmap, error) {
	var beatmap models.Beatmap
	err := s.db.Joins("JOIN beatmapsets ON beatmapsets.id = beatmaps.beatmapset_id").
		Where("beatmaps.id = ? AND beatmapsets.owner_id = ?", id, ownerID).
		First(&beatmap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwnedOrMissing
		}
		return nil, fmt.Errorf("failed to load beatmap: %w", err)
	}
	return &beatmap, nil
}

func (s *BeatmapService) checkSetOwnership(ownerID string, setID int) error {
	var count int64
	if err := s.db.Model(&models.Beatmapset{}).Where("id = ? AND owner_id = ?", setID, ownerID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if count == 0 {
		return ErrNotOwnedOrMissing
	}
	return nil
}
