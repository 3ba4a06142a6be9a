package dto

import "github.com/ishpytoing/backend/internal/models"

type BeatmapsetResponse struct {
	ID             int              `json:"id"`
	Owner          UserResponse     `json:"owner"`
	Artist         string           `json:"artist"`
	Title          string           `json:"title"`
	ArtistOriginal string           `json:"artist_original"`
	TitleOriginal  string           `json:"title_original"`
	YtID           string           `json:"yt_id"`
	PreviewPoint   int              `json:"preview_point"`
	Duration       int              `json:"duration"`
	Beatmaps       []BeatmapSummary `json:"beatmaps"`
}

type BeatmapsetListResponse struct {
	Beatmapsets []BeatmapsetResponse `json:"beatmapsets"`
}

type CreateBeatmapsetRequest struct {
	Artist         string `json:"artist"`
	Title          string `json:"title"`
	ArtistOriginal string `json:"artist_original"`
	TitleOriginal  string `json:"title_original"`
	YtID           string `json:"yt_id"`
	PreviewPoint   int    `json:"preview_point"`
	Duration       int    `json:"duration"`
}

func (r *CreateBeatmapsetRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.Artist == "" {
		fields["artist"] = "artist is required"
	}
	if r.Title == "" {
		fields["title"] = "title is required"
	}
	if r.YtID == "" {
		fields["yt_id"] = "yt_id is required"
	}
	if r.PreviewPoint < 0 {
		fields["preview_point"] = "preview_point must not be negative"
	}
	if r.Duration < 0 {
		fields["duration"] = "duration must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

type UpdateBeatmapsetRequest struct {
	Artist         *string `json:"artist"`
	Title          *string `json:"title"`
	ArtistOriginal *string `json:"artist_original"`
	TitleOriginal  *string `json:"title_original"`
	YtID           *string `json:"yt_id"`
	PreviewPoint   *int    `json:"preview_point"`
	Duration       *int    `json:"duration"`
}

func (r *UpdateBeatmapsetRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.Artist != nil && *r.Artist == "" {
		fields["artist"] = "artist must not be empty"
	}
	if r.Title != nil && *r.Title == "" {
		fields["title"] = "title must not be empty"
	}
	if r.YtID != nil && *r.YtID == "" {
		fields["yt_id"] = "yt_id must not be empty"
	}
	if r.PreviewPoint != nil && *r.PreviewPoint < 0 {
		fields["preview_point"] = "preview_point must not be negative"
	}
	if r.Duration != nil && *r.Duration < 0 {
		fields["duration"] = "duration must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func NewBeatmapsetResponse(set *models.Beatmapset) BeatmapsetResponse {
	beatmaps := make([]BeatmapSummary, len(set.Beatmaps))
	for i := range set.Beatmaps {
		beatmaps[i] = NewBeatmapSummary(&set.Beatmaps[i])
	}
	return BeatmapsetResponse{
		ID:             set.ID,
		Owner:          NewUserResponse(&set.Owner),
		Artist:         set.Artist,
		Title:          set.Title,
		ArtistOriginal: set.ArtistOriginal,
		TitleOriginal:  set.TitleOriginal,
		YtID:           set.YtID,
		PreviewPoint:   set.PreviewPoint,
		Duration:       set.Duration,
		Beatmaps:       beatmaps,
	}
}
