package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizhub/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

type DeleteQuizRequest struct {
	QuizID uint `json:"quiz_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

type ResetAccountRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *QuizHandler) SaveQuiz(c *gin.Context) {
	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	quizID, err := h.quizService.SaveQuiz(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quiz_id": quizID})
}

func (h *QuizHandler) GetQuizDetails(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quiz ID"})
		return
	}

	quiz, questions, err := h.quizService.GetDetails(uint(quizID))
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Quiz not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": quiz, "questions": questions})
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	var req DeleteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	removed, err := h.quizService.Delete(req.QuizID, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": removed})
}

func (h *QuizHandler) ResetAccount(c *gin.Context) {
	var req ResetAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.quizService.ResetAccount(req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *QuizHandler) IncrementPlays(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quiz ID"})
		return
	}

	if err := h.quizService.IncrementPlays(uint(quizID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
