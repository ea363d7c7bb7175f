package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"quizbank-service/internal/models"
	"quizbank-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// FetchQuiz returns the sampled, option-shuffled question set for a code.
// A code with no questions yields an empty array, not an error.
func (h *QuizHandler) FetchQuiz(c *gin.Context) {
	code := c.Param("code")
	questions, err := h.Service.Sample(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quizzes"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuizHandler) BulkUpload(c *gin.Context) {
	var uploads []models.QuestionUpload
	if err := c.ShouldBindJSON(&uploads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a non-empty array of questions."})
		return
	}

	count, err := h.Service.BulkUpload(c.Request.Context(), uploads)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert questions."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d questions added successfully!", count)})
}
