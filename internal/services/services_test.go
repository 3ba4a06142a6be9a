package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/ishpytoing/backend/internal/database"
	"github.com/ishpytoing/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB gives each test an isolated in-memory database with the full
// schema migrated. The pool is pinned to one connection because every sqlite
// ":memory:" connection is a separate database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) *models.User {
	t.Helper()
	user := models.NewUser(id, name, "https://example.com/"+id+".png", nil)
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBeatmapset(t *testing.T, db *gorm.DB, ownerID string) *models.Beatmapset {
	t.Helper()
	set := &models.Beatmapset{
		OwnerID:      ownerID,
		Artist:       "YOASOBI",
		Title:        "Yoru ni Kakeru",
		YtID:         "x8VYWazR5mE",
		PreviewPoint: 42000,
		Duration:     262,
	}
	require.NoError(t, db.Create(set).Error)
	return set
}

func seedBeatmap(t *testing.T, db *gorm.DB, setID int, diffname string) *models.Beatmap {
	t.Helper()
	beatmap := &models.Beatmap{
		BeatmapsetID: setID,
		Diffname:     diffname,
		Content:      "[00:01.00]sore wa\n[00:03.20]chiisana hikari no you na",
		Kpm:          312.5,
	}
	require.NoError(t, db.Create(beatmap).Error)
	return beatmap
}

func ptr[T any](v T) *T { return &v }
