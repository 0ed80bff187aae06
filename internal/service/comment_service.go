package service

import (
	"context"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"

	"github.com/google/uuid"
)

type CommentService struct {
	postCache  PostCache
	store      CommentStore
	dispatcher Dispatcher
	hub        Broadcaster
}

func NewCommentService(postCache PostCache, store CommentStore, dispatcher Dispatcher, hub Broadcaster) *CommentService {
	return &CommentService{postCache: postCache, store: store, dispatcher: dispatcher, hub: hub}
}

type AddCommentInput struct {
	PostID string
	UserTo string
	Text   string
}

// Add 评论写路径。评论建档和帖子计数是同批入队的两条独立任务，
// at-least-once 各自消费，不提供跨任务原子性。
func (s *CommentService) Add(ctx context.Context, actor CurrentUser, in AddCommentInput) (*model.Comment, error) {
	if in.PostID == "" || in.Text == "" {
		return nil, ErrValidation
	}

	comment := &model.Comment{
		ID:          uuid.NewString(),
		PostID:      in.PostID,
		Username:    actor.Username,
		AvatarColor: actor.AvatarColor,
		Text:        in.Text,
		CreatedAt:   time.Now().UTC(),
	}

	s.hub.Publish("add-comment", comment)

	// 快路径先把投影上的评论数加一
	if err := s.postCache.IncrementCommentsCount(ctx, in.PostID); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Enqueue(ctx, queue.QueueComment, queue.JobAddComment, in.PostID, queue.AddCommentJob{
		Comment:  *comment,
		PostID:   in.PostID,
		UserFrom: actor.UserID,
		UserTo:   in.UserTo,
		Username: actor.Username,
	}); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Enqueue(ctx, queue.QueueComment, queue.JobIncrementComments, in.PostID, queue.IncrementCommentsJob{
		PostID: in.PostID,
	}); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost 帖子评论列表，直接读库
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	if postID == "" {
		return nil, ErrValidation
	}
	return s.store.ListByPost(ctx, postID)
}
