package controllers_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"pylearn/backend/controllers"
	"pylearn/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	ident *services.Identity
	err   error
}

func (f *fakeProvider) Name() string { return "google" }

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example/consent?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (*services.Identity, error) {
	return f.ident, f.err
}

func newOAuthApp(t *testing.T, provider services.OAuthProvider) *fiber.App {
	t.Helper()

	app, db, cfg := newTestApp(t)
	oc := &controllers.OAuthController{
		Svc:       services.NewAuthService(db),
		Cfg:       cfg,
		Providers: map[string]services.OAuthProvider{"google": provider},
	}
	app.Get("/oauth/:provider/callback", oc.Callback)
	app.Get("/oauth/:provider/url", oc.AuthURL)
	return app
}

func TestOAuthCallbackCreatesUserAndRedirects(t *testing.T) {
	app := newOAuthApp(t, &fakeProvider{ident: &services.Identity{
		ID:       "g-123",
		Email:    "grace@example.com",
		Name:     "Grace Hopper",
		Picture:  "https://example.com/grace.png",
		Provider: "google",
	}})

	req := httptest.NewRequest("GET", "/oauth/google/callback?code=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", location.Path)
	assert.NotEmpty(t, location.Query().Get("token"))
}

func TestOAuthCallbackExchangeFailure(t *testing.T) {
	app := newOAuthApp(t, &fakeProvider{err: services.ErrOAuthExchangeFailed})

	req := httptest.NewRequest("GET", "/oauth/google/callback?code=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOAuthCallbackMissingCode(t *testing.T) {
	app := newOAuthApp(t, &fakeProvider{})

	req := httptest.NewRequest("GET", "/oauth/google/callback", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOAuthUnconfiguredProvider(t *testing.T) {
	app := newOAuthApp(t, &fakeProvider{})

	req := httptest.NewRequest("GET", "/oauth/github/url", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
