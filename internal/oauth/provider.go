package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ishpytoing/backend/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the provider-agnostic view of a third-party account.
// ID is provider-qualified: the provider's numeric id concatenated with the
// provider name ("8484892osu"), so ids from different providers never collide.
type Profile struct {
	ID        string
	Name      string
	AvatarURL string
	Raw       []byte // raw provider response, persisted alongside the user
}

// Provider runs the authorization-code flow against one identity provider.
type Provider interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*Profile, error)
}

type provider struct {
	name       string
	config     *oauth2.Config
	profileURL string
	parse      func(raw []byte) (id, name, avatarURL string, err error)
}

func (p *provider) Name() string { return p.name }

func (p *provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for an access token, fetches the
// provider's profile endpoint with it, and maps the response to a Profile.
func (p *provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth: exchanging code with %s: %w", p.name, err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.profileURL)
	if err != nil {
		return nil, fmt.Errorf("oauth: fetching %s profile: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth: %s profile endpoint returned status %d", p.name, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oauth: reading %s profile: %w", p.name, err)
	}

	id, name, avatarURL, err := p.parse(raw)
	if err != nil {
		return nil, fmt.Errorf("oauth: decoding %s profile: %w", p.name, err)
	}

	return &Profile{
		ID:        id + p.name,
		Name:      name,
		AvatarURL: avatarURL,
		Raw:       raw,
	}, nil
}

func NewGitHub(cfg *config.Config) Provider {
	return &provider{
		name: "github",
		config: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
		profileURL: "https://api.github.com/user",
		parse: func(raw []byte) (string, string, string, error) {
			var u struct {
				ID        int64  `json:"id"`
				Login     string `json:"login"`
				AvatarURL string `json:"avatar_url"`
			}
			if err := json.Unmarshal(raw, &u); err != nil {
				return "", "", "", err
			}
			if u.ID == 0 {
				return "", "", "", fmt.Errorf("missing user id")
			}
			return fmt.Sprintf("%d", u.ID), u.Login, u.AvatarURL, nil
		},
	}
}

func NewOsu(cfg *config.Config) Provider {
	return &provider{
		name: "osu",
		config: &oauth2.Config{
			ClientID:     cfg.OsuClientID,
			ClientSecret: cfg.OsuClientSecret,
			RedirectURL:  cfg.OsuRedirectURL,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://osu.ppy.sh/oauth/authorize",
				TokenURL: "https://osu.ppy.sh/oauth/token",
			},
		},
		profileURL: "https://osu.ppy.sh/api/v2/me",
		parse: func(raw []byte) (string, string, string, error) {
			var u struct {
				ID        int64  `json:"id"`
				Username  string `json:"username"`
				AvatarURL string `json:"avatar_url"`
			}
			if err := json.Unmarshal(raw, &u); err != nil {
				return "", "", "", err
			}
			if u.ID == 0 {
				return "", "", "", fmt.Errorf("missing user id")
			}
			return fmt.Sprintf("%d", u.ID), u.Username, u.AvatarURL, nil
		},
	}
}

func NewGoogle(cfg *config.Config) Provider {
	return &provider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		profileURL: "https://www.googleapis.com/userinfo/v2/me",
		parse: func(raw []byte) (string, string, string, error) {
			var u struct {
				ID        string `json:"id"`
				GivenName string `json:"given_name"`
				Picture   string `json:"picture"`
			}
			if err := json.Unmarshal(raw, &u); err != nil {
				return "", "", "", err
			}
			if u.ID == "" {
				return "", "", "", fmt.Errorf("missing user id")
			}
			return u.ID, u.GivenName, u.Picture, nil
		},
	}
}

// Registry maps URL provider names to configured providers.
func Registry(cfg *config.Config) map[string]Provider {
	providers := []Provider{NewGitHub(cfg), NewOsu(cfg), NewGoogle(cfg)}
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return m
}

// ReservedSuffixes are provider names; display names may not end in one, so a
// chosen name can never impersonate an auto-generated provider-qualified id.
var ReservedSuffixes = []string{"github", "osu", "google"}
