package dto

import "github.com/ishpytoing/backend/internal/models"

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type UserStats struct {
	JoinTime     int64   `json:"join_time"`
	KeyAccuracy  float64 `json:"key_accuracy"`
	KanaAccuracy float64 `json:"kana_accuracy"`
	TotalScore   int64   `json:"total_score"`
	PlayCount    int     `json:"play_count"`
}

type UserPageResponse struct {
	User   UserResponse    `json:"user"`
	Stats  UserStats       `json:"stats"`
	Scores []ScoreResponse `json:"scores"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type ChangeNameRequest struct {
	Name string `json:"name"`
}

type ChangeNameResponse struct {
	Success bool   `json:"success"`
	NewName string `json:"new_name"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

func NewUserStats(u *models.User) UserStats {
	return UserStats{
		JoinTime:     u.JoinTime,
		KeyAccuracy:  u.KeyAccuracy,
		KanaAccuracy: u.KanaAccuracy,
		TotalScore:   u.TotalScore,
		PlayCount:    u.PlayCount,
	}
}
