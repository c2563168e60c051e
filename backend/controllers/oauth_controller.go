package controllers

import (
	"fmt"

	"pylearn/backend/config"
	"pylearn/backend/services"
	"pylearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// oauthState is static because the token itself, not the state round-trip,
// carries the identity here; the frontend drives the flow via /url endpoints.
const oauthState = "pylearn_oauth"

type OAuthController struct {
	Svc       *services.AuthService
	Cfg       *config.Config
	Providers map[string]services.OAuthProvider
}

func NewOAuthController(svc *services.AuthService, cfg *config.Config) *OAuthController {
	providers := map[string]services.OAuthProvider{}
	if cfg.GoogleClientID != "" {
		providers["google"] = services.NewGoogleProvider(cfg)
	}
	if cfg.GithubClientID != "" {
		providers["github"] = services.NewGithubProvider(cfg)
	}
	return &OAuthController{Svc: svc, Cfg: cfg, Providers: providers}
}

// Redirect godoc
// @Summary Redirect to the provider's consent page
// @Tags auth
// @Failure 503 {object} utils.ErrorResponse
// @Router /auth/{provider} [get]
func (oc *OAuthController) Redirect(c *fiber.Ctx) error {
	provider, ok := oc.Providers[c.Params("provider")]
	if !ok {
		return utils.ServiceUnavailable(c, fmt.Sprintf("%s OAuth not configured", c.Params("provider")))
	}
	return c.Redirect(provider.AuthCodeURL(oauthState), fiber.StatusTemporaryRedirect)
}

// AuthURL godoc
// @Summary Get the provider's consent URL for a frontend-driven redirect
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponse
// @Router /auth/{provider}/url [get]
func (oc *OAuthController) AuthURL(c *fiber.Ctx) error {
	provider, ok := oc.Providers[c.Params("provider")]
	if !ok {
		return utils.ServiceUnavailable(c, fmt.Sprintf("%s OAuth not configured", c.Params("provider")))
	}
	return c.JSON(fiber.Map{"url": provider.AuthCodeURL(oauthState)})
}

// Callback godoc
// @Summary Handle the provider callback
// @Description Exchanges the authorization code, finds or creates the user and
// redirects to the frontend with a JWT token
// @Tags auth
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/{provider}/callback [get]
func (oc *OAuthController) Callback(c *fiber.Ctx) error {
	provider, ok := oc.Providers[c.Params("provider")]
	if !ok {
		return utils.ServiceUnavailable(c, fmt.Sprintf("%s OAuth not configured", c.Params("provider")))
	}

	code := c.Query("code")
	if code == "" {
		return utils.BadRequest(c, "Missing authorization code")
	}

	ident, err := provider.Exchange(c.Context(), code)
	if err != nil {
		return utils.BadRequest(c, fmt.Sprintf("Failed to get user info from %s", provider.Name()))
	}

	user, err := oc.Svc.OAuthLogin(ident)
	if err != nil {
		return utils.BadRequest(c, fmt.Sprintf("Failed to get user info from %s", provider.Name()))
	}

	token, err := utils.GenerateJWTToken(user.ID, oc.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.Redirect(
		fmt.Sprintf("%s/auth/callback?token=%s", oc.Cfg.FrontendURL, token),
		fiber.StatusSeeOther,
	)
}
