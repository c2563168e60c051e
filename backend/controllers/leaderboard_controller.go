package controllers

import (
	"strconv"

	"pylearn/backend/services"
	"pylearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardController struct {
	Svc *services.LeaderboardService
}

func NewLeaderboardController(svc *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Svc: svc}
}

// Get godoc
// @Summary Get top users by total points
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 50)"
// @Success 200 {array} services.LeaderboardEntry
// @Router /leaderboard [get]
func (lc *LeaderboardController) Get(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	entries, err := lc.Svc.Top(limit)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(entries)
}
