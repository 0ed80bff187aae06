package handler

import (
	"net/http"

	"Wave_Social/internal/middleware"
	"Wave_Social/internal/model"
	"Wave_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	svc *service.ReactionService
}

type AddReactionReq struct {
	PostID string `json:"postId" binding:"required"`
	UserTo string `json:"userTo"`
	Type   string `json:"type" binding:"required"`
}

func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

// AddReaction 点表情接口
func (h *ReactionHandler) AddReaction(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req AddReactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	reaction, err := h.svc.Add(c.Request.Context(), actor, service.AddReactionInput{
		PostID:  req.PostID,
		UserTo:  req.UserTo,
		Feeling: model.Feeling(req.Type),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reaction added successfully",
		"reaction": reaction,
	})
}

// ListByPost 帖子的表情列表
func (h *ReactionHandler) ListByPost(c *gin.Context) {
	reactions, err := h.svc.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reactions": reactions})
}

// GetByUsername 单个用户对帖子的表情
func (h *ReactionHandler) GetByUsername(c *gin.Context) {
	reaction, err := h.svc.GetByUsername(c.Request.Context(), c.Param("postId"), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": reaction})
}
