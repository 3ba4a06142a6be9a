package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ishpytoing/backend/internal/config"
	"github.com/ishpytoing/backend/internal/dto"
	"github.com/ishpytoing/backend/internal/models"
	"github.com/ishpytoing/backend/internal/oauth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUnknownProvider = errors.New("unknown oauth provider")
	ErrInvalidToken    = errors.New("invalid or expired refresh token")
)

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	providers map[string]oauth.Provider
}

func NewAuthService(db *gorm.DB, cfg *config.Config, providers map[string]oauth.Provider) *AuthService {
	return &AuthService{db: db, cfg: cfg, providers: providers}
}

func (s *AuthService) Provider(name string) (oauth.Provider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// SignIn completes the authorization-code flow: exchanges the code, fetches
// the provider profile, finds or creates the local user, and issues a token
// pair. The caller has already verified the anti-forgery state.
func (s *AuthService) SignIn(ctx context.Context, providerName, code string) (*dto.AuthResponse, error) {
	p, err := s.Provider(providerName)
	if err != nil {
		return nil, err
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreateUser(profile)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) findOrCreateUser(profile *oauth.Profile) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", profile.ID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	name, err := s.dedupName(profile.Name)
	if err != nil {
		return nil, err
	}

	created := models.NewUser(profile.ID, name, profile.AvatarURL, datatypes.JSON(profile.Raw))
	if err := s.db.Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// dedupName appends a random 3-digit suffix until the name is free.
func (s *AuthService) dedupName(base string) (string, error) {
	name := base
	for {
		var count int64
		if err := s.db.Model(&models.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check name: %w", err)
		}
		if count == 0 {
			return name, nil
		}
		name = fmt.Sprintf("%s%03d", base, mrand.Intn(1000))
	}
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// generateAccessToken carries only the user id; handlers re-fetch the user
// row per request instead of trusting a cached serialized copy.
func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
