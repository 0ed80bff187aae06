package consumer

import (
	"context"
	"sync"

	"Wave_Social/internal/model"
	"Wave_Social/internal/service"

	"gorm.io/gorm"
)

type fakeReactionStore struct {
	mu       sync.Mutex
	upserted []*model.Reaction
}

func (s *fakeReactionStore) Upsert(_ context.Context, r *model.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, r)
	return nil
}

// fakeReactionPostStore 在内存里复刻原子计数语义：新表情 +1，旧表情 -1 且不跌破 0
type fakeReactionPostStore struct {
	mu   sync.Mutex
	post model.Post
}

func (s *fakeReactionPostStore) UpdateReactionCounts(_ context.Context, postID string, feeling, previous model.Feeling) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bump := func(f model.Feeling, delta int64) {
		var c *int64
		switch f {
		case model.FeelingAngry:
			c = &s.post.Reactions.Angry
		case model.FeelingHappy:
			c = &s.post.Reactions.Happy
		case model.FeelingLike:
			c = &s.post.Reactions.Like
		case model.FeelingLove:
			c = &s.post.Reactions.Love
		case model.FeelingSad:
			c = &s.post.Reactions.Sad
		case model.FeelingWow:
			c = &s.post.Reactions.Wow
		default:
			return
		}
		*c += delta
		if *c < 0 {
			*c = 0
		}
	}
	bump(feeling, 1)
	if previous != "" {
		bump(previous, -1)
	}
	snapshot := s.post
	return &snapshot, nil
}

type fakeAggregateCache struct {
	mu     sync.Mutex
	synced []model.Reactions
}

func (c *fakeAggregateCache) SavePostReactions(_ context.Context, _ string, counts model.Reactions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synced = append(c.synced, counts)
	return nil
}

type fakeUsers struct {
	users map[string]*model.User
}

func (s *fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeNotifier 模拟判定：suppress 为真时返回 (nil, nil)
type fakeNotifier struct {
	mu       sync.Mutex
	suppress bool
	inserted []service.InsertNotificationParams
}

func (n *fakeNotifier) Insert(_ context.Context, p service.InsertNotificationParams) (*model.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inserted = append(n.inserted, p)
	if n.suppress || p.UserFrom == p.UserTo {
		return nil, nil
	}
	return &model.Notification{ID: "n1"}, nil
}

type fanout struct {
	Queue string
	Job   string
	Key   string
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	calls []fanout
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, queueName, jobName, key string, _ any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, fanout{Queue: queueName, Job: jobName, Key: key})
	return nil
}

type fakeCommentStore struct {
	mu      sync.Mutex
	created []*model.Comment
}

func (s *fakeCommentStore) Create(_ context.Context, c *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, c)
	return nil
}

type fakeCommentPostStore struct {
	mu   sync.Mutex
	post model.Post
}

func (s *fakeCommentPostStore) FindByID(_ context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.post.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	snapshot := s.post
	return &snapshot, nil
}

func (s *fakeCommentPostStore) IncrementCommentsCount(_ context.Context, postID string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.post.ID != postID {
		return nil, gorm.ErrRecordNotFound
	}
	s.post.CommentsCount++
	snapshot := s.post
	return &snapshot, nil
}

type fakeAuthUpserts struct {
	upserted []*model.AuthUser
}

func (s *fakeAuthUpserts) Upsert(_ context.Context, au *model.AuthUser) error {
	s.upserted = append(s.upserted, au)
	return nil
}

type fakeUserUpserts struct {
	upserted []*model.User
}

func (s *fakeUserUpserts) Upsert(_ context.Context, u *model.User) error {
	s.upserted = append(s.upserted, u)
	return nil
}

type fakePostUpserts struct {
	upserted []*model.Post
}

func (s *fakePostUpserts) Upsert(_ context.Context, p *model.Post) error {
	s.upserted = append(s.upserted, p)
	return nil
}

type fakeAuthorCounts struct {
	deltas map[string]int64
}

func (s *fakeAuthorCounts) IncrementPostsCount(_ context.Context, id string, delta int64) error {
	if s.deltas == nil {
		s.deltas = make(map[string]int64)
	}
	s.deltas[id] += delta
	return nil
}
