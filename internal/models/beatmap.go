package models

import "time"

// Beatmap is one difficulty of a beatmapset. Content is the chart text in the
// game's line/timestamp notation; the backend treats it as opaque and list
// views never load it. Kpm is the notes-per-minute metric.
type Beatmap struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	BeatmapsetID int       `gorm:"not null;index" json:"beatmapset_id"`
	Diffname     string    `gorm:"size:50" json:"diffname"`
	Content      string    `gorm:"type:text" json:"content,omitempty"`
	Kpm          float64   `json:"kpm"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	Beatmapset Beatmapset `gorm:"foreignKey:BeatmapsetID" json:"-"`
	Scores     []Score    `gorm:"foreignKey:BeatmapID" json:"-"`
}
