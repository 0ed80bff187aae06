package handler

import (
	"io"
	"net/http"
	"strconv"

	"Wave_Social/internal/middleware"
	"Wave_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

type CreatePostReq struct {
	Post     string `form:"post" json:"post"`
	BgColor  string `form:"bgColor" json:"bgColor"`
	Privacy  string `form:"privacy" json:"privacy"`
	Feelings string `form:"feelings" json:"feelings"`
	GifURL   string `form:"gifUrl" json:"gifUrl"`
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePost 发帖接口，图片走 multipart 的 image 字段（可选）
func (h *PostHandler) CreatePost(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req CreatePostReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	var image []byte
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid image"})
			return
		}
		image, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid image"})
			return
		}
	}

	post, err := h.svc.Create(c.Request.Context(), actor, service.CreatePostInput{
		Text:     req.Post,
		BgColor:  req.BgColor,
		Privacy:  req.Privacy,
		Feelings: req.Feelings,
		GifURL:   req.GifURL,
		Image:    image,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// List feed 列表，缓存优先
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := h.svc.GetAll(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListWithMedia 只看带图帖子
func (h *PostHandler) ListWithMedia(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	posts, err := h.svc.GetAllWithMedia(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
