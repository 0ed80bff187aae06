package handler

import (
	"net/http"
	"strconv"

	"Wave_Social/internal/middleware"
	"Wave_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow 关注
func (h *FollowHandler) Follow(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	changed, err := h.svc.Follow(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "changed": changed})
}

// Unfollow 取关
func (h *FollowHandler) Unfollow(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	changed, err := h.svc.Unfollow(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "changed": changed})
}

// IsFollowing 是否已关注
func (h *FollowHandler) IsFollowing(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	following, err := h.svc.IsFollowing(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// Followers 粉丝列表，cursor 翻页
func (h *FollowHandler) Followers(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, next, err := h.svc.ListFollowers(c.Request.Context(), c.Param("userId"), cursor, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "nextCursor": next})
}

// Followings 关注列表
func (h *FollowHandler) Followings(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, next, err := h.svc.ListFollowings(c.Request.Context(), c.Param("userId"), cursor, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "nextCursor": next})
}
