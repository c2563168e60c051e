package services

import (
	"context"
	"encoding/json"
	"net/http"

	"pylearn/backend/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Identity is what a provider resolves an authorization code into.
type Identity struct {
	ID       string
	Email    string
	Name     string
	Picture  string
	Username string
	Provider string
}

// OAuthProvider exchanges an authorization code for a provider identity.
// Controllers only see this interface so tests can substitute a fake.
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

type GoogleProvider struct {
	Config *oauth2.Config
}

func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}

	client := p.Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrOAuthExchangeFailed
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrOAuthExchangeFailed
	}
	if info.Email == "" {
		return nil, ErrOAuthExchangeFailed
	}

	return &Identity{
		ID:       info.ID,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
		Provider: "google",
	}, nil
}

type GithubProvider struct {
	Config *oauth2.Config
}

func NewGithubProvider(cfg *config.Config) *GithubProvider {
	return &GithubProvider{
		Config: &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  cfg.GithubRedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (p *GithubProvider) Name() string { return "github" }

func (p *GithubProvider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

func (p *GithubProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}

	client := p.Config.Client(ctx, token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, ErrOAuthExchangeFailed
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrOAuthExchangeFailed
	}

	var info struct {
		ID        json.Number `json:"id"`
		Login     string      `json:"login"`
		Name      string      `json:"name"`
		Email     string      `json:"email"`
		AvatarURL string      `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, ErrOAuthExchangeFailed
	}

	// The primary email may be private, fetch it separately
	email := info.Email
	if email == "" {
		email = p.primaryEmail(client)
	}
	if email == "" {
		return nil, ErrOAuthExchangeFailed
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}

	return &Identity{
		ID:       info.ID.String(),
		Email:    email,
		Name:     name,
		Picture:  info.AvatarURL,
		Username: info.Login,
		Provider: "github",
	}, nil
}

func (p *GithubProvider) primaryEmail(client *http.Client) string {
	resp, err := client.Get("https://api.github.com/user/emails")
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return ""
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email
		}
	}
	return ""
}
