package services

import (
	"testing"

	"github.com/ishpytoing/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetByID("nobodyosu")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetWithScoresNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	scores := NewScoreService(db)

	user := seedUser(t, db, "100osu", "alice")
	set := seedBeatmapset(t, db, user.ID)
	beatmap := seedBeatmap(t, db, set.ID, "Normal")

	first, err := scores.Submit(user.ID, submitRequest(beatmap.ID, 100, 0.9, 0.9))
	require.NoError(t, err)
	second, err := scores.Submit(user.ID, submitRequest(beatmap.ID, 200, 0.9, 0.9))
	require.NoError(t, err)

	got, userScores, err := svc.GetWithScores(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.Len(t, userScores, 2)
	assert.Equal(t, second.ID, userScores[0].ID)
	assert.Equal(t, first.ID, userScores[1].ID)

	// The beatmap partial comes along, but never its chart content.
	assert.Equal(t, "Normal", userScores[0].Beatmap.Diffname)
	assert.Empty(t, userScores[0].Beatmap.Content)
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	seedUser(t, db, "100osu", "TanakaTaro")
	seedUser(t, db, "200osu", "yamada")
	seedUser(t, db, "300osu", "tanabe")

	users, err := svc.Search("TANA")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "TanakaTaro", users[0].Name)
	assert.Equal(t, "tanabe", users[1].Name)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	seedUser(t, db, "100osu", "alice")
	seedUser(t, db, "200osu", "bob")

	users, err := svc.Search("")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestChangeName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := seedUser(t, db, "100osu", "alice")

	name, err := svc.ChangeName(user.ID, "  uchuneko  ")
	require.NoError(t, err)
	assert.Equal(t, "uchuneko", name)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "uchuneko", updated.Name)
}

func TestChangeNameInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := seedUser(t, db, "100osu", "alice")

	for _, name := range []string{"", "   ", "someoneosu", "FooGitHub", "xGoogle"} {
		_, err := svc.ChangeName(user.ID, name)
		assert.ErrorIs(t, err, ErrNameInvalid, "name %q", name)
	}

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "alice", updated.Name)
}

func TestChangeNameTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := seedUser(t, db, "100osu", "alice")
	seedUser(t, db, "200osu", "bob")

	_, err := svc.ChangeName(user.ID, "bob")
	assert.ErrorIs(t, err, ErrNameTaken)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "alice", updated.Name)
}

func TestChangeNameToOwnName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := seedUser(t, db, "100osu", "alice")

	name, err := svc.ChangeName(user.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestChangeNameUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.ChangeName("nobodyosu", "newname")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
