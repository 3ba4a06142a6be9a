package dto

import "github.com/ishpytoing/backend/internal/models"

type SubmitScoreRequest struct {
	BeatmapID         int      `json:"beatmap_id"`
	Score             *int64   `json:"score"`
	KeyAccuracy       *float64 `json:"key_accuracy"`
	KanaAccuracy      *float64 `json:"kana_accuracy"`
	SpeedModification float64  `json:"speed_modification"`
	ModFlag           int      `json:"mod_flag"`
	Replay            string   `json:"replay,omitempty"`
}

func (r *SubmitScoreRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.BeatmapID <= 0 {
		fields["beatmap_id"] = "beatmap_id is required"
	}
	if r.Score == nil {
		fields["score"] = "score is required"
	} else if *r.Score < 0 {
		fields["score"] = "score must not be negative"
	}
	if r.KeyAccuracy == nil {
		fields["key_accuracy"] = "key_accuracy is required"
	} else if *r.KeyAccuracy < 0 || *r.KeyAccuracy > 1 {
		fields["key_accuracy"] = "key_accuracy must be between 0 and 1"
	}
	if r.KanaAccuracy == nil {
		fields["kana_accuracy"] = "kana_accuracy is required"
	} else if *r.KanaAccuracy < 0 || *r.KanaAccuracy > 1 {
		fields["kana_accuracy"] = "kana_accuracy must be between 0 and 1"
	}
	if r.SpeedModification < 0 {
		fields["speed_modification"] = "speed_modification must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

type ScoreResponse struct {
	ID                int             `json:"id"`
	BeatmapID         int             `json:"beatmap_id"`
	Score             int64           `json:"score"`
	KeyAccuracy       float64         `json:"key_accuracy"`
	KanaAccuracy      float64         `json:"kana_accuracy"`
	TimeUnix          int64           `json:"time_unix"`
	SpeedModification float64         `json:"speed_modification"`
	ModFlag           int             `json:"mod_flag"`
	User              *UserResponse   `json:"user,omitempty"`
	Beatmap           *BeatmapSummary `json:"beatmap,omitempty"`
}

type ReplayResponse struct {
	ScoreID int    `json:"score_id"`
	Data    string `json:"data"`
}

// NewScoreResponse nests the user partial when the row was loaded with its
// user, and likewise for the beatmap summary.
func NewScoreResponse(s *models.Score) ScoreResponse {
	resp := ScoreResponse{
		ID:                s.ID,
		BeatmapID:         s.BeatmapID,
		Score:             s.Score,
		KeyAccuracy:       s.KeyAccuracy,
		KanaAccuracy:      s.KanaAccuracy,
		TimeUnix:          s.TimeUnix,
		SpeedModification: s.SpeedModification,
		ModFlag:           s.ModFlag,
	}
	if s.User.ID != "" {
		user := NewUserResponse(&s.User)
		resp.User = &user
	}
	if s.Beatmap.ID != 0 {
		beatmap := NewBeatmapSummary(&s.Beatmap)
		resp.Beatmap = &beatmap
	}
	return resp
}

func NewScoreResponses(scores []models.Score) []ScoreResponse {
	out := make([]ScoreResponse, len(scores))
	for i := range scores {
		out[i] = NewScoreResponse(&scores[i])
	}
	return out
}
