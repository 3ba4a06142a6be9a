package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ishpytoing/backend/internal/models"
	"github.com/ishpytoing/backend/internal/oauth"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameInvalid  = errors.New("name is empty or ends in a reserved suffix")
	ErrNameTaken    = errors.New("name is already taken")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// GetWithScores loads a user plus their scores newest-first, each with the
// beatmap summary preloaded (content excluded).
func (s *UserService) GetWithScores(id string) (*models.User, []models.Score, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	var scores []models.Score
	err = s.db.Where("user_id = ?", id).
		Preload("Beatmap", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "beatmapset_id", "diffname", "kpm")
		}).
		Order("id DESC").
		Find(&scores).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load scores: %w", err)
	}

	return user, scores, nil
}

// Search matches names case-insensitively on substring.
func (s *UserService) Search(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	if err := s.db.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// ChangeName validates, checks uniqueness, and updates the display name.
// Names ending in a provider suffix are rejected so a chosen name cannot
// impersonate an auto-generated one.
func (s *UserService) ChangeName(userID, newName string) (string, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return "", ErrNameInvalid
	}
	lower := strings.ToLower(name)
	for _, suffix := range oauth.ReservedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return "", ErrNameInvalid
		}
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("name = ? AND id <> ?", name, userID).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check name: %w", err)
	}
	if count > 0 {
		return "", ErrNameTaken
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("name", name)
	if result.Error != nil {
		return "", fmt.Errorf("failed to update name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return "", ErrUserNotFound
	}

	return name, nil
}
