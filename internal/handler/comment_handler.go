package handler

import (
	"net/http"

	"Wave_Social/internal/middleware"
	"Wave_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type AddCommentReq struct {
	PostID  string `json:"postId" binding:"required"`
	UserTo  string `json:"userTo"`
	Comment string `json:"comment" binding:"required"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// AddComment 评论接口
func (h *CommentHandler) AddComment(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.Add(c.Request.Context(), actor, service.AddCommentInput{
		PostID: req.PostID,
		UserTo: req.UserTo,
		Text:   req.Comment,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// ListByPost 帖子评论列表
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.svc.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
