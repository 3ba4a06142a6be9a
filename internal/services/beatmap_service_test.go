package services

import (
	"testing"

	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeatmapCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	set := seedBeatmapset(t, db, owner.ID)

	beatmap, err := svc.Create(owner.ID, &dto.CreateBeatmapRequest{
		BeatmapsetID: set.ID,
		Diffname:     "Insane",
		Content:      "[00:01.00]test line",
		Kpm:          420,
	})
	require.NoError(t, err)
	assert.NotZero(t, beatmap.ID)
	assert.Equal(t, set.ID, beatmap.BeatmapsetID)
}

func TestBeatmapCreateInUnownedSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	other := seedUser(t, db, "200osu", "bob")
	set := seedBeatmapset(t, db, owner.ID)

	_, err := svc.Create(other.ID, &dto.CreateBeatmapRequest{
		BeatmapsetID: set.ID,
		Diffname:     "Insane",
		Content:      "[00:01.00]test line",
		Kpm:          420,
	})
	assert.ErrorIs(t, err, ErrNotOwnedOrMissing)

	var count int64
	require.NoError(t, db.Model(&models.Beatmap{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBeatmapGetLoadsParentSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	set := seedBeatmapset(t, db, owner.ID)
	normal := seedBeatmap(t, db, set.ID, "Normal")
	seedBeatmap(t, db, set.ID, "Hard")

	got, err := svc.Get(normal.ID)
	require.NoError(t, err)
	assert.Equal(t, normal.Content, got.Content)
	assert.Equal(t, set.ID, got.Beatmapset.ID)
	assert.Equal(t, "alice", got.Beatmapset.Owner.Name)
	// Sibling difficulties come through as summaries for the diff switcher.
	assert.Len(t, got.Beatmapset.Beatmaps, 2)
}

func TestBeatmapGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	_, err := svc.Get(999)
	assert.ErrorIs(t, err, ErrBeatmapNotFound)
}

func TestBeatmapUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	set := seedBeatmapset(t, db, owner.ID)
	beatmap := seedBeatmap(t, db, set.ID, "Normal")

	updated, err := svc.Update(owner.ID, beatmap.ID, &dto.UpdateBeatmapRequest{
		Diffname: ptr("Another"),
		Kpm:      ptr(500.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Another", updated.Diffname)
	assert.Equal(t, 500.0, updated.Kpm)
	assert.Equal(t, beatmap.Content, updated.Content)
}

func TestBeatmapUpdateNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	other := seedUser(t, db, "200osu", "bob")
	set := seedBeatmapset(t, db, owner.ID)
	beatmap := seedBeatmap(t, db, set.ID, "Normal")

	_, err := svc.Update(other.ID, beatmap.ID, &dto.UpdateBeatmapRequest{Diffname: ptr("hijacked")})
	assert.ErrorIs(t, err, ErrNotOwnedOrMissing)

	_, err = svc.Update(other.ID, 999, &dto.UpdateBeatmapRequest{Diffname: ptr("hijacked")})
	assert.ErrorIs(t, err, ErrNotOwnedOrMissing)

	var unchanged models.Beatmap
	require.NoError(t, db.First(&unchanged, "id = ?", beatmap.ID).Error)
	assert.Equal(t, "Normal", unchanged.Diffname)
}

func TestBeatmapDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	set := seedBeatmapset(t, db, owner.ID)
	beatmap := seedBeatmap(t, db, set.ID, "Normal")

	require.NoError(t, svc.Delete(owner.ID, beatmap.ID))

	var count int64
	require.NoError(t, db.Model(&models.Beatmap{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBeatmapDeleteNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeatmapService(db)

	owner := seedUser(t, db, "100osu", "alice")
	other := seedUser(t, db, "200osu", "bob")
	set := seedBeatmapset(t, db, owner.ID)
	beatmap := seedBeatmap(t, db, set.ID, "Normal")

	err := svc.Delete(other.ID, beatmap.ID)
	assert.ErrorIs(t, err, ErrNotOwnedOrMissing)

	var count int64
	require.NoError(t, db.Model(&models.Beatmap{}).Where("id = ?", beatmap.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
