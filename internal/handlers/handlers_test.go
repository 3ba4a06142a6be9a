package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ishpytoing/backend/internal/config"
	"github.com/ishpytoing/backend/internal/database"
	"github.com/ishpytoing/backend/internal/middleware"
	"github.com/ishpytoing/backend/internal/models"
	"github.com/ishpytoing/backend/internal/oauth"
	"github.com/ishpytoing/backend/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testStateSecret = "test-state-secret"

// stubProvider satisfies oauth.Provider without a network round trip.
type stubProvider struct {
	profile *oauth.Profile
}

func (p *stubProvider) Name() string { return "osu" }
func (p *stubProvider) AuthURL(state string) string { return "https://example.com/oauth?state=" + state }
func (p *stubProvider) Exchange(_ context.Context, _ string) (*oauth.Profile, error) {
	return p.profile, nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// newTestEnv wires the full API surface against an in-memory database, with
// the osu provider stubbed to return the given profile.
func newTestEnv(t *testing.T, profile *oauth.Profile) *testEnv {
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

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		OAuthStateSecret: testStateSecret,
	}

	providers := map[string]oauth.Provider{"osu": &stubProvider{profile: profile}}

	authService := services.NewAuthService(db, cfg, providers)
	userService := services.NewUserService(db)
	setService := services.NewBeatmapsetService(db)
	beatmapService := services.NewBeatmapService(db)
	scoreService := services.NewScoreService(db)

	authHandler := NewAuthHandler(authService, userService, cfg)
	userHandler := NewUserHandler(userService)
	setHandler := NewBeatmapsetHandler(setService)
	beatmapHandler := NewBeatmapHandler(beatmapService, scoreService)
	scoreHandler := NewScoreHandler(scoreService)

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/whoami", authHandler.Whoami)
	api.Get("/unauthorized", authHandler.Unauthorized)
	api.Get("/login/:provider/request", authHandler.Request)
	api.Post("/login/:provider/authorize", authHandler.Authorize)
	api.Post("/auth/refresh", authHandler.Refresh)
	api.Post("/logout", authHandler.Logout)
	api.Get("/users", userHandler.Search)
	api.Get("/users/:id", userHandler.Get)
	api.Post("/me/changename", middleware.JWTProtected(cfg), userHandler.ChangeName)
	api.Get("/beatmapsets", setHandler.List)
	api.Get("/beatmapsets/:id", setHandler.Get)
	api.Post("/beatmapsets", middleware.JWTProtected(cfg), setHandler.Create)
	api.Put("/beatmapsets/:id", middleware.JWTProtected(cfg), setHandler.Update)
	api.Delete("/beatmapsets/:id", middleware.JWTProtected(cfg), setHandler.Delete)
	api.Get("/beatmaps/:id", beatmapHandler.Get)
	api.Post("/beatmaps", middleware.JWTProtected(cfg), beatmapHandler.Create)
	api.Put("/beatmaps/:id", middleware.JWTProtected(cfg), beatmapHandler.Update)
	api.Delete("/beatmaps/:id", middleware.JWTProtected(cfg), beatmapHandler.Delete)
	api.Post("/scores", middleware.JWTProtected(cfg), scoreHandler.Submit)
	api.Get("/scores/:id/replay", scoreHandler.GetReplay)

	return &testEnv{app: app, db: db, cfg: cfg}
}

func osuProfile(id, name string) *oauth.Profile {
	return &oauth.Profile{
		ID:        id + "osu",
		Name:      name,
		AvatarURL: "https://a.ppy.sh/" + id,
		Raw:       []byte(`{"id":` + id + `,"username":"` + name + `"}`),
	}
}

// signIn runs the stubbed authorize flow and returns the issued access token.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/login/osu/authorize", map[string]any{
		"code":  "authcode",
		"state": testStateSecret,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// tokenFor seeds a user directly and mints an access token for it, bypassing
// the oauth flow. Used when a test needs a second account.
func (e *testEnv) tokenFor(t *testing.T, id, name string) string {
	t.Helper()
	require.NoError(t, e.db.Create(models.NewUser(id, name, "", nil)).Error)

	claims := jwt.MapClaims{
		"sub": id,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(e.cfg.JWTAccessExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

func itoa(n int) string { return strconv.Itoa(n) }

func (e *testEnv) userCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.User{}).Count(&count).Error)
	return count
}
