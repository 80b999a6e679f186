package handlers

import (
	"net/http"

	"github.com/HediM1312/twitter-clone/internal/middleware"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionService *services.ReactionService
}

func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Detect 仅识别表情，不记录反应
func (h *ReactionHandler) Detect(c *gin.Context) {
	var req services.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reactionService.Detect(c.Request.Context(), req.Image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// React 把摄像头快照识别出的表情记录为对推文的反应
func (h *ReactionHandler) React(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.reactionService.React(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Reaction recorded successfully",
		"reaction": reaction,
	})
}

// Remove 撤回当前用户对推文的反应
func (h *ReactionHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.reactionService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction removed successfully"})
}

func (h *ReactionHandler) List(c *gin.Context) {
	reactions, err := h.reactionService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": reactions})
}

// Summary 返回推文的表情反应统计
func (h *ReactionHandler) Summary(c *gin.Context) {
	summary, err := h.reactionService.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
