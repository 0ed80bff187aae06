package service

import (
	"context"
	"errors"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/pkg"
	"Wave_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// ops 记录副作用发生顺序，用来断言"先缓存后入队"这类次序约束

type enqueueCall struct {
	Queue   string
	Job     string
	Key     string
	Payload any
}

type fakeDispatcher struct {
	ops   *[]string
	calls []enqueueCall
	err   error
}

func (d *fakeDispatcher) Enqueue(_ context.Context, queueName, jobName, key string, payload any) error {
	if d.err != nil {
		return d.err
	}
	if d.ops != nil {
		*d.ops = append(*d.ops, "enqueue:"+jobName)
	}
	d.calls = append(d.calls, enqueueCall{Queue: queueName, Job: jobName, Key: key, Payload: payload})
	return nil
}

type broadcast struct {
	Event   string
	Payload any
}

type fakeHub struct {
	ops    *[]string
	events []broadcast
}

func (h *fakeHub) Publish(event string, payload any) {
	if h.ops != nil {
		*h.ops = append(*h.ops, "publish:"+event)
	}
	h.events = append(h.events, broadcast{Event: event, Payload: payload})
}

type fakeUserCache struct {
	ops   *[]string
	saved []*model.User
	err   error
}

func (c *fakeUserCache) SaveUser(_ context.Context, u *model.User) error {
	if c.err != nil {
		return c.err
	}
	if c.ops != nil {
		*c.ops = append(*c.ops, "cache:saveUser")
	}
	c.saved = append(c.saved, u)
	return nil
}

func (c *fakeUserCache) GetUser(_ context.Context, id string) (*model.User, bool, error) {
	for _, u := range c.saved {
		if u.ID == id {
			return u, true, nil
		}
	}
	return nil, false, nil
}

type fakePostCache struct {
	ops        *[]string
	saved      []*model.Post
	increments []string
	posts      []model.Post
	saveErr    error
	incrErr    error
}

func (c *fakePostCache) SavePost(_ context.Context, p *model.Post, _ string) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	if c.ops != nil {
		*c.ops = append(*c.ops, "cache:savePost")
	}
	c.saved = append(c.saved, p)
	return nil
}

func (c *fakePostCache) GetPost(_ context.Context, id string) (*model.Post, bool, error) {
	for i := range c.posts {
		if c.posts[i].ID == id {
			return &c.posts[i], true, nil
		}
	}
	return nil, false, nil
}

func (c *fakePostCache) GetPosts(_ context.Context, start, end int64) ([]model.Post, error) {
	if start >= int64(len(c.posts)) {
		return nil, nil
	}
	if end >= int64(len(c.posts)) {
		end = int64(len(c.posts)) - 1
	}
	return c.posts[start : end+1], nil
}

func (c *fakePostCache) PostCount(_ context.Context) (int64, error) {
	return int64(len(c.posts)), nil
}

func (c *fakePostCache) SetCommentsCount(_ context.Context, postID string, n int64) error {
	for i := range c.posts {
		if c.posts[i].ID == postID {
			c.posts[i].CommentsCount = n
		}
	}
	return nil
}

func (c *fakePostCache) IncrementCommentsCount(_ context.Context, postID string) error {
	if c.incrErr != nil {
		return c.incrErr
	}
	if c.ops != nil {
		*c.ops = append(*c.ops, "cache:incrementComments")
	}
	c.increments = append(c.increments, postID)
	return nil
}

type fakeReactionCache struct {
	ops        *[]string
	existing   map[string]*model.Reaction // key postID/username
	saved      []*model.Reaction
	aggregates map[string]model.Reactions
	err        error
}

func (c *fakeReactionCache) SaveUserReaction(_ context.Context, r *model.Reaction) error {
	if c.err != nil {
		return c.err
	}
	if c.ops != nil {
		*c.ops = append(*c.ops, "cache:saveReaction")
	}
	c.saved = append(c.saved, r)
	return nil
}

func (c *fakeReactionCache) SavePostReactions(_ context.Context, postID string, counts model.Reactions) error {
	if c.aggregates == nil {
		c.aggregates = make(map[string]model.Reactions)
	}
	c.aggregates[postID] = counts
	return nil
}

func (c *fakeReactionCache) GetUserReaction(_ context.Context, postID, username string) (*model.Reaction, bool, error) {
	if r, ok := c.existing[postID+"/"+username]; ok {
		return r, true, nil
	}
	return nil, false, nil
}

type fakeAuthStore struct {
	byUsername map[string]*model.AuthUser
	byEmail    map[string]*model.AuthUser
	byToken    map[string]*model.AuthUser
	exists     bool
	tokens     map[string]time.Time
	passwords  map[string]string
}

func (s *fakeAuthStore) Exists(_ context.Context, _, _ string) (bool, error) {
	return s.exists, nil
}

func (s *fakeAuthStore) FindByUsername(_ context.Context, username string) (*model.AuthUser, error) {
	if au, ok := s.byUsername[username]; ok {
		return au, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAuthStore) FindByEmail(_ context.Context, email string) (*model.AuthUser, error) {
	if au, ok := s.byEmail[email]; ok {
		return au, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAuthStore) FindByResetToken(_ context.Context, token string) (*model.AuthUser, error) {
	if au, ok := s.byToken[token]; ok {
		return au, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAuthStore) SaveResetToken(_ context.Context, id, token string, expires time.Time) error {
	if s.tokens == nil {
		s.tokens = make(map[string]time.Time)
	}
	s.tokens[token] = expires
	return nil
}

func (s *fakeAuthStore) UpdatePassword(_ context.Context, id, hashed string) error {
	if s.passwords == nil {
		s.passwords = make(map[string]string)
	}
	s.passwords[id] = hashed
	return nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePostStore struct {
	posts map[string]*model.Post
}

func (s *fakePostStore) FindByID(_ context.Context, id string) (*model.Post, error) {
	if p, ok := s.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePostStore) List(_ context.Context, q mysql.PostQuery, offset, limit int) ([]model.Post, error) {
	var out []model.Post
	for _, p := range s.posts {
		if q.HasMedia && p.ImgID == "" && p.GifURL == "" {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePostStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.posts)), nil
}

type fakeReactionStore struct {
	byPost map[string][]model.Reaction
}

func (s *fakeReactionStore) ListByPost(_ context.Context, postID string) ([]model.Reaction, error) {
	return s.byPost[postID], nil
}

func (s *fakeReactionStore) FindByPostAndUsername(_ context.Context, postID, username string) (*model.Reaction, error) {
	for _, r := range s.byPost[postID] {
		if r.Username == username {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCommentStore struct {
	byPost map[string][]model.Comment
}

func (s *fakeCommentStore) ListByPost(_ context.Context, postID string) ([]model.Comment, error) {
	return s.byPost[postID], nil
}

type fakeNotificationStore struct {
	created []*model.Notification
	read    []string
	err     error
}

func (s *fakeNotificationStore) Create(_ context.Context, n *model.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userTo string, _ int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range s.created {
		if n.UserTo == userTo {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id string) error {
	s.read = append(s.read, id)
	return nil
}

type fakeFollowStore struct {
	relations map[string]bool // follower/followee
	changed   bool
	err       error
}

func (s *fakeFollowStore) key(a, b string) string { return a + "/" + b }

func (s *fakeFollowStore) Follow(_ context.Context, followerID, followeeID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.relations == nil {
		s.relations = make(map[string]bool)
	}
	k := s.key(followerID, followeeID)
	if s.relations[k] {
		return false, nil
	}
	s.relations[k] = true
	return true, nil
}

func (s *fakeFollowStore) Unfollow(_ context.Context, followerID, followeeID string) (bool, error) {
	k := s.key(followerID, followeeID)
	if !s.relations[k] {
		return false, nil
	}
	delete(s.relations, k)
	return true, nil
}

func (s *fakeFollowStore) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	return s.relations[s.key(followerID, followeeID)], nil
}

func (s *fakeFollowStore) ListFollowers(_ context.Context, _ string, _ uint64, _ int) ([]model.Follow, uint64, error) {
	return nil, 0, nil
}

func (s *fakeFollowStore) ListFollowings(_ context.Context, _ string, _ uint64, _ int) ([]model.Follow, uint64, error) {
	return nil, 0, nil
}

type fakeUploader struct {
	err      error
	uploaded [][]byte
}

func (u *fakeUploader) UploadImage(_ context.Context, data []byte, publicID string) (pkg.UploadResult, error) {
	if u.err != nil {
		return pkg.UploadResult{}, u.err
	}
	u.uploaded = append(u.uploaded, data)
	return pkg.UploadResult{PublicID: publicID, Version: "v1"}, nil
}

func (u *fakeUploader) ImageURL(version, publicID string) string {
	return "http://cdn.test/" + version + "/" + publicID
}

var errBoom = errors.New("boom")
