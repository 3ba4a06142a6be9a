package services

import (
	"errors"
	"fmt"

	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotOwnedOrMissing is returned for every failed ownership check. Not
// distinguishing "missing" from "not yours" keeps existence of other users'
// rows unguessable.
var (
	ErrNotOwnedOrMissing  = errors.New("beatmapset does not exist or you do not own it")
	ErrBeatmapsetNotFound = errors.New("beatmapset not found")
)

type BeatmapsetService struct {
	db *gorm.DB
}

func NewBeatmapsetService(db *gorm.DB) *BeatmapsetService {
	return &BeatmapsetService{db: db}
}

// beatmapSummaries preloads beatmaps without their content column.
func beatmapSummaries(db *gorm.DB) *gorm.DB {
	return db.Select("id", "beatmapset_id", "diffname", "kpm")
}

func (s *BeatmapsetService) List() ([]models.Beatmapset, error) {
	var sets []models.Beatmapset
	err := s.db.Preload("Beatmaps", beatmapSummaries).
		Preload("Owner").
		Order("id ASC").
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beatmapsets: %w", err)
	}
	return sets, nil
}

func (s *BeatmapsetService) Get(id int) (*models.Beatmapset, error) {
	var set models.Beatmapset
	err := s.db.Preload("Beatmaps", beatmapSummaries).
		Preload("Owner").
		First(&set, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeatmapsetNotFound
		}
		return nil, fmt.Errorf("failed to load beatmapset: %w", err)
	}
	return &set, nil
}

func (s *BeatmapsetService) Create(ownerID string, req *dto.CreateBeatmapsetRequest) (*models.Beatmapset, error) {
	set := models.Beatmapset{
		OwnerID:        ownerID,
		Artist:         req.Artist,
		Title:          req.Title,
		ArtistOriginal: req.ArtistOriginal,
		TitleOriginal:  req.TitleOriginal,
		YtID:           req.YtID,
		PreviewPoint:   req.PreviewPoint,
		Duration:       req.Duration,
	}
	if err := s.db.Create(&set).Error; err != nil {
		return nil, fmt.Errorf("failed to create beatmapset: %w", err)
	}
	return s.Get(set.ID)
}

func (s *BeatmapsetService) Update(ownerID string, id int, req *dto.UpdateBeatmapsetRequest) (*models.Beatmapset, error) {
	updates := make(map[string]interface{})
	if req.Artist != nil {
		updates["artist"] = *req.Artist
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ArtistOriginal != nil {
		updates["artist_original"] = *req.ArtistOriginal
	}
	if req.TitleOriginal != nil {
		updates["title_original"] = *req.TitleOriginal
	}
	if req.YtID != nil {
		updates["yt_id"] = *req.YtID
	}
	if req.PreviewPoint != nil {
		updates["preview_point"] = *req.PreviewPoint
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Beatmapset{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update beatmapset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotOwnedOrMissing
		}
	} else if err := s.checkOwnership(ownerID, id); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes the set and its beatmaps in one transaction.
func (s *BeatmapsetService) Delete(ownerID string, id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Beatmapset{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete beatmapset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotOwnedOrMissing
		}
		if err := tx.Where("beatmapset_id = ?", id).Delete(&models.Beatmap{}).Error; err != nil {
			return fmt.Errorf("failed to delete beatmaps: %w", err)
		}
		return nil
	})
}

func (s *BeatmapsetService) checkOwnership(ownerID string, id int) error {
	var count int64
	if err := s.db.Model(&models.Beatmapset{}).Where("id = ? AND owner_id = ?", id, ownerID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if count == 0 {
		return ErrNotOwnedOrMissing
	}
	return nil
}
