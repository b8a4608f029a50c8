package handlers

import (
	"net/http"
	"strconv"

	"quizhub/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) GetAllQuizzes(c *gin.Context) {
	quizzes, err := h.statsService.ListPublic()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quizzes": quizzes})
}

func (h *StatsHandler) GetUserQuizzes(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	result, err := h.statsService.ListForUser(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"quizzes":     result.Quizzes,
		"total_plays": result.TotalPlays,
		"username":    result.Username,
		"avatar_url":  result.AvatarURL,
	})
}

func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.statsService.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": leaderboard})
}
