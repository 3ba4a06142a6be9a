package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is keyed by a provider-qualified id, e.g. "8484892osu": the provider's
// numeric id concatenated with the provider name. Accuracy fields are running
// averages over all submitted scores and start at 1.
type User struct {
	ID              string         `gorm:"size:69;primaryKey" json:"id"`
	Name            string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	AvatarURL       string         `gorm:"size:255" json:"avatar_url"`
	JoinTime        int64          `gorm:"not null" json:"join_time"`
	KeyAccuracy     float64        `gorm:"default:1" json:"key_accuracy"`
	KanaAccuracy    float64        `gorm:"default:1" json:"kana_accuracy"`
	TotalScore      int64          `gorm:"default:0" json:"total_score"`
	PlayCount       int            `gorm:"default:0" json:"play_count"`
	ProviderProfile datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`

	Scores      []Score      `gorm:"foreignKey:UserID" json:"-"`
	Beatmapsets []Beatmapset `gorm:"foreignKey:OwnerID" json:"-"`
}

func NewUser(id, name, avatarURL string, profile datatypes.JSON) *User {
	return &User{
		ID:              id,
		Name:            name,
		AvatarURL:       avatarURL,
		JoinTime:        time.Now().Unix(),
		KeyAccuracy:     1,
		KanaAccuracy:    1,
		ProviderProfile: profile,
	}
}
