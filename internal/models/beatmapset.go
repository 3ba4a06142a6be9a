package models

import "time"

// Beatmapset groups the difficulties of one song. Artist/title carry both a
// romanized and an original-language variant; YtID references the song video.
type Beatmapset struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	OwnerID        string    `gorm:"size:69;not null;index" json:"owner_id"`
	Artist         string    `gorm:"size:100" json:"artist"`
	Title          string    `gorm:"size:100" json:"title"`
	ArtistOriginal string    `gorm:"size:100" json:"artist_original"`
	TitleOriginal  string    `gorm:"size:100" json:"title_original"`
	YtID           string    `gorm:"size:69" json:"yt_id"`
	PreviewPoint   int       `json:"preview_point"`
	Duration       int       `json:"duration"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`

	Owner    User      `gorm:"foreignKey:OwnerID" json:"-"`
	Beatmaps []Beatmap `gorm:"foreignKey:BeatmapsetID;constraint:OnDelete:CASCADE" json:"-"`
}
