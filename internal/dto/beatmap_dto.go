package dto

import "github.com/ishpytoing/backend/internal/models"

// BeatmapSummary is the partial view nested in beatmapset responses: no
// content, which can run to hundreds of kilobytes per chart.
type BeatmapSummary struct {
	ID       int     `json:"id"`
	Diffname string  `json:"diffname"`
	Kpm      float64 `json:"kpm"`
}

type BeatmapResponse struct {
	ID           int     `json:"id"`
	BeatmapsetID int     `json:"beatmapset_id"`
	Diffname     string  `json:"diffname"`
	Content      string  `json:"content"`
	Kpm          float64 `json:"kpm"`
}

// BeatmapPageResponse is the full GET /api/beatmaps/:id payload: the chart,
// its parent set, and the best-score-per-user leaderboard.
type BeatmapPageResponse struct {
	Beatmap    BeatmapResponse    `json:"beatmap"`
	Beatmapset BeatmapsetResponse `json:"beatmapset"`
	Scores     []ScoreResponse    `json:"scores"`
}

type CreateBeatmapRequest struct {
	BeatmapsetID int     `json:"beatmapset_id"`
	Diffname     string  `json:"diffname"`
	Content      string  `json:"content"`
	Kpm          float64 `json:"kpm"`
}

func (r *CreateBeatmapRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.BeatmapsetID <= 0 {
		fields["beatmapset_id"] = "beatmapset_id is required"
	}
	if r.Diffname == "" {
		fields["diffname"] = "diffname is required"
	}
	if r.Content == "" {
		fields["content"] = "content is required"
	}
	if r.Kpm < 0 {
		fields["kpm"] = "kpm must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateBeatmapRequest uses pointers so absent fields are left untouched.
type UpdateBeatmapRequest struct {
	Diffname *string  `json:"diffname"`
	Content  *string  `json:"content"`
	Kpm      *float64 `json:"kpm"`
}

func (r *UpdateBeatmapRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.Diffname != nil && *r.Diffname == "" {
		fields["diffname"] = "diffname must not be empty"
	}
	if r.Content != nil && *r.Content == "" {
		fields["content"] = "content must not be empty"
	}
	if r.Kpm != nil && *r.Kpm < 0 {
		fields["kpm"] = "kpm must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func NewBeatmapSummary(b *models.Beatmap) BeatmapSummary {
	return BeatmapSummary{ID: b.ID, Diffname: b.Diffname, Kpm: b.Kpm}
}

func NewBeatmapResponse(b *models.Beatmap) BeatmapResponse {
	return BeatmapResponse{
		ID:           b.ID,
		BeatmapsetID: b.BeatmapsetID,
		Diffname:     b.Diffname,
		Content:      b.Content,
		Kpm:          b.Kpm,
	}
}
