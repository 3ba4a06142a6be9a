package models

// Score is immutable once inserted. TimeUnix is stamped server-side at
// submission; ModFlag is a bitfield of gameplay modifiers.
type Score struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	UserID            string  `gorm:"size:69;not null;index" json:"user_id"`
	BeatmapID         int     `gorm:"not null;index" json:"beatmap_id"`
	Score             int64   `gorm:"not null" json:"score"`
	KeyAccuracy       float64 `json:"key_accuracy"`
	KanaAccuracy      float64 `json:"kana_accuracy"`
	TimeUnix          int64   `json:"time_unix"`
	SpeedModification float64 `gorm:"default:1" json:"speed_modification"`
	ModFlag           int     `gorm:"default:0" json:"mod_flag"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Beatmap Beatmap `gorm:"foreignKey:BeatmapID" json:"-"`
}
