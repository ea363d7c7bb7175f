package handlers

import (
	"context"
	"errors"
	"net/http"

	"quizbank-service/internal/models"
	"quizbank-service/internal/repository"
	"quizbank-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CodeHandler struct {
	Service *service.CodeService
}

func NewCodeHandler(s *service.CodeService) *CodeHandler {
	return &CodeHandler{Service: s}
}

func (h *CodeHandler) ListCodes(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	// An empty body is a valid unauthenticated request.
	_ = c.ShouldBindJSON(&req)

	listings, err := h.Service.ListVisible(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *CodeHandler) CreateCode(c *gin.Context) {
	var req struct {
		Code   string `json:"code"`
		IsPaid bool   `json:"isPaid"`
		Active *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := &models.AccessCode{Code: req.Code, IsPaid: req.IsPaid, Active: true}
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := h.Service.CreateCode(c.Request.Context(), code); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Code already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, code)
}

func (h *CodeHandler) HideCode(c *gin.Context) {
	h.updateHidden(c, h.Service.HideCode)
}

func (h *CodeHandler) UnhideCode(c *gin.Context) {
	h.updateHidden(c, h.Service.UnhideCode)
}

func (h *CodeHandler) updateHidden(c *gin.Context, apply func(ctx context.Context, email, code string) error) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and code are required"})
		return
	}

	if err := apply(c.Request.Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
