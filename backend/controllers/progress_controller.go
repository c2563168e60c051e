package controllers

import (
	"errors"

	"pylearn/backend/config"
	"pylearn/backend/services"
	"pylearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Svc *services.ProgressService
	Cfg *config.Config
}

func NewProgressController(svc *services.ProgressService, cfg *config.Config) *ProgressController {
	return &ProgressController{Svc: svc, Cfg: cfg}
}

// List godoc
// @Summary Get all progress for the current user
// @Tags progress
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) List(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	records, err := pc.Svc.List(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	out := make([]map[string]interface{}, len(records))
	for i := range records {
		out[i] = records[i].ToJSON()
	}
	return c.JSON(out)
}

// Save godoc
// @Summary Save exercise completion progress
// @Description Creates the completion record, or updates it on a re-attempt
// @Tags progress
// @Accept json
// @Produce json
// @Param request body services.SaveProgressInput true "Completion data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [post]
func (pc *ProgressController) Save(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input services.SaveProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.ExerciseID == "" || input.CourseID == "" {
		return utils.BadRequest(c, "exerciseId and courseId are required")
	}
	if input.PointsEarned < 0 {
		return utils.BadRequest(c, "pointsEarned must not be negative")
	}

	record, err := pc.Svc.Save(userID, input)
	if err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}
	return c.JSON(record.ToJSON())
}

// GetExercise godoc
// @Summary Get progress for a specific exercise
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/exercise/{id} [get]
func (pc *ProgressController) GetExercise(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	record, err := pc.Svc.Get(userID, c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFound(c, "No progress for this exercise")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(record.ToJSON())
}
