package models

// Replay stores the raw input recording for a score, written in the same
// transaction as the score itself when the client submits one.
type Replay struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	ScoreID int    `gorm:"not null;uniqueIndex" json:"score_id"`
	Data    string `gorm:"type:text" json:"data"`

	Score Score `gorm:"foreignKey:ScoreID" json:"-"`
}
