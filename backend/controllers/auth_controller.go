package controllers

import (
	"errors"

	"pylearn/backend/config"
	"pylearn/backend/models"
	"pylearn/backend/services"
	"pylearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Svc *services.AuthService
	Cfg *config.Config
}

func NewAuthController(svc *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Svc: svc, Cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterInput true "Registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "email, username and password are required")
	}

	user, err := ac.Svc.Register(input)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) || errors.Is(err, services.ErrDuplicateUsername) {
			return utils.Error(c, fiber.StatusBadRequest, err)
		}
		return utils.InternalServerError(c, "Could not create user")
	}

	return ac.tokenResponse(c, user)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password, returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Svc.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return ac.tokenResponse(c, user)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := ac.Svc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return c.JSON(user.ToJSON())
}

func (ac *AuthController) tokenResponse(c *fiber.Ctx, user *models.User) error {
	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.ToJSON(),
	})
}
