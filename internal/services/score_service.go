package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/models"
	"gorm.io/gorm"
)

// LeaderboardSize caps the best-score-per-user query.
const LeaderboardSize = 50

var ErrReplayNotFound = errors.New("replay not found")

type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

// Submit inserts a score for the session user and folds it into the user's
// aggregates. The score row, optional replay, and the aggregate update share
// one transaction; the user id always comes from the session, never the
// payload. The aggregate update is a single UPDATE over the stored values
// (new_avg = (old_avg*play_count + v) / (play_count+1)), so concurrent
// submissions cannot lose each other's contribution.
func (s *ScoreService) Submit(userID string, req *dto.SubmitScoreRequest) (*models.Score, error) {
	var count int64
	if err := s.db.Model(&models.Beatmap{}).Where("id = ?", req.BeatmapID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check beatmap: %w", err)
	}
	if count == 0 {
		return nil, ErrBeatmapNotFound
	}

	speed := req.SpeedModification
	if speed == 0 {
		speed = 1
	}

	score := models.Score{
		UserID:            userID,
		BeatmapID:         req.BeatmapID,
		Score:             *req.Score,
		KeyAccuracy:       *req.KeyAccuracy,
		KanaAccuracy:      *req.KanaAccuracy,
		TimeUnix:          time.Now().Unix(),
		SpeedModification: speed,
		ModFlag:           req.ModFlag,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&score).Error; err != nil {
			return fmt.Errorf("failed to create score: %w", err)
		}

		if req.Replay != "" {
			replay := models.Replay{ScoreID: score.ID, Data: req.Replay}
			if err := tx.Create(&replay).Error; err != nil {
				return fmt.Errorf("failed to create replay: %w", err)
			}
		}

		result := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"key_accuracy":  gorm.Expr("(key_accuracy * play_count + ?) / (play_count + 1)", *req.KeyAccuracy),
			"kana_accuracy": gorm.Expr("(kana_accuracy * play_count + ?) / (play_count + 1)", *req.KanaAccuracy),
			"total_score":   gorm.Expr("total_score + ?", *req.Score),
			"play_count":    gorm.Expr("play_count + 1"),
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update user stats: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&score, "id = ?", score.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload score: %w", err)
	}
	return &score, nil
}

// BestScores returns each user's maximum score on a beatmap, descending,
// capped at LeaderboardSize. Ties on equal max scores order by earliest
// submission.
func (s *ScoreService) BestScores(beatmapID int) ([]models.Score, error) {
	best := s.db.Model(&models.Score{}).
		Select("user_id, MAX(score) AS best_score").
		Where("beatmap_id = ?", beatmapID).
		Group("user_id")

	var scores []models.Score
	err := s.db.Model(&models.Score{}).
		Joins("JOIN (?) AS best ON scores.user_id = best.user_id AND scores.score = best.best_score", best).
		Where("scores.beatmap_id = ?", beatmapID).
		Order("scores.score DESC").
		Order("scores.id ASC").
		Limit(LeaderboardSize).
		Preload("User").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return scores, nil
}

func (s *ScoreService) GetReplay(scoreID int) (*models.Replay, error) {
	var replay models.Replay
	if err := s.db.First(&replay, "score_id = ?", scoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplayNotFound
		}
		return nil, fmt.Errorf("failed to load replay: %w", err)
	}
	return &replay, nil
}
