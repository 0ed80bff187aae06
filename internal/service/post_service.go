package service

import (
	"context"
	"fmt"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/pkg"
	"Wave_Social/internal/queue"
	"Wave_Social/internal/repository/mysql"

	"github.com/google/uuid"
)

const postPageSize = 10

type PostService struct {
	cache      PostCache
	store      PostStore
	dispatcher Dispatcher
	hub        Broadcaster
	uploader   pkg.Uploader
}

func NewPostService(cache PostCache, store PostStore, dispatcher Dispatcher, hub Broadcaster, uploader pkg.Uploader) *PostService {
	return &PostService{
		cache:      cache,
		store:      store,
		dispatcher: dispatcher,
		hub:        hub,
		uploader:   uploader,
	}
}

type CreatePostInput struct {
	Text     string
	BgColor  string
	Privacy  string
	Feelings string
	GifURL   string
	Image    []byte
}

type PostsPage struct {
	Posts []model.Post `json:"posts"`
	Total int64        `json:"postsCount"`
}

// Create 发帖写路径：构造实体 → 可选传图 → 广播 → 写缓存 → 入队 → 返回。
// 入队成功就是本次请求的终点，落库由 post 队列消费者完成。
func (s *PostService) Create(ctx context.Context, actor CurrentUser, in CreatePostInput) (*model.Post, error) {
	if in.Text == "" && in.GifURL == "" && len(in.Image) == 0 {
		return nil, ErrValidation
	}

	post := &model.Post{
		ID:            uuid.NewString(),
		UserID:        actor.UserID,
		Username:      actor.Username,
		Email:         actor.Email,
		AvatarColor:   actor.AvatarColor,
		Text:          in.Text,
		BgColor:       in.BgColor,
		Privacy:       in.Privacy,
		Feelings:      in.Feelings,
		GifURL:        in.GifURL,
		ImgID:         "",
		ImgVersion:    "",
		CommentsCount: 0,
		CreatedAt:     time.Now().UTC(),
	}

	// 图片地址要进实体，传不上去整个创建失败
	if len(in.Image) > 0 {
		uploaded, err := s.uploader.UploadImage(ctx, in.Image, post.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: post image upload: %v", ErrExternalDependency, err)
		}
		post.ImgID = uploaded.PublicID
		post.ImgVersion = uploaded.Version
	}

	s.hub.Publish("add-post", post)

	if err := s.cache.SavePost(ctx, post, actor.UID); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Enqueue(ctx, queue.QueuePost, queue.JobAddPost, post.ID, queue.AddPostJob{Post: *post}); err != nil {
		return nil, err
	}
	return post, nil
}

// GetAll feed 读路径：先走缓存索引，缓存空窗才回源数据库
func (s *PostService) GetAll(ctx context.Context, page int) (*PostsPage, error) {
	if page <= 0 {
		page = 1
	}
	start := int64((page - 1) * postPageSize)
	end := start + postPageSize - 1

	cached, err := s.cache.GetPosts(ctx, start, end)
	if err == nil && len(cached) > 0 {
		total, cntErr := s.cache.PostCount(ctx)
		if cntErr != nil {
			total = int64(len(cached))
		}
		return &PostsPage{Posts: cached, Total: total}, nil
	}

	posts, err := s.store.List(ctx, mysql.PostQuery{}, int(start), postPageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PostsPage{Posts: posts, Total: total}, nil
}

// GetAllWithMedia 只取带图或带动图的帖子
func (s *PostService) GetAllWithMedia(ctx context.Context, page int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * postPageSize
	return s.store.List(ctx, mysql.PostQuery{HasMedia: true}, offset, postPageSize)
}
