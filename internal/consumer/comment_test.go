package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture() (*Consumer, *fakeCommentStore, *fakeCommentPostStore, *fakeNotifier, *fakeEnqueuer) {
	store := &fakeCommentStore{}
	posts := &fakeCommentPostStore{post: model.Post{ID: "p1", Text: "hello", CommentsCount: 0}}
	users := &fakeUsers{users: map[string]*model.User{
		"u2": {ID: "u2", Username: "Bob", Email: "bob@example.com"},
	}}
	notifier := &fakeNotifier{}
	enq := &fakeEnqueuer{}
	c := NewCommentConsumer([]string{"127.0.0.1:9092"}, store, posts, users, notifier, enq, discardLogger())
	return c, store, posts, notifier, enq
}

func commentJob(t *testing.T, data queue.AddCommentJob) *Job {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &Job{Name: queue.JobAddComment, Payload: raw, logger: discardLogger()}
}

func TestCommentHandler(t *testing.T) {
	base := queue.AddCommentJob{
		Comment:  model.Comment{ID: "c1", PostID: "p1", Username: "Amy", Text: "nice"},
		PostID:   "p1",
		UserFrom: "u1",
		UserTo:   "u2",
		Username: "Amy",
	}

	t.Run("persists comment and notifies with snapshots", func(t *testing.T) {
		c, store, _, notifier, enq := newCommentFixture()
		h := c.handlers[queue.JobAddComment]

		require.NoError(t, h(context.Background(), commentJob(t, base)))

		require.Len(t, store.created, 1)
		require.Len(t, notifier.inserted, 1)
		p := notifier.inserted[0]
		assert.Equal(t, "nice", p.Comment)
		assert.Equal(t, "hello", p.Post)
		assert.Equal(t, model.NotificationComments, p.NotificationType)

		require.Len(t, enq.calls, 1)
		assert.Equal(t, queue.JobSendNotification, enq.calls[0].Job)
	})

	t.Run("self comment stays silent", func(t *testing.T) {
		c, store, _, _, enq := newCommentFixture()
		h := c.handlers[queue.JobAddComment]

		self := base
		self.UserTo = "u1"
		require.NoError(t, h(context.Background(), commentJob(t, self)))

		// 评论照常落库，只是不打扰本人
		assert.Len(t, store.created, 1)
		assert.Empty(t, enq.calls)
	})

	t.Run("missing post is retryable", func(t *testing.T) {
		c, _, _, _, _ := newCommentFixture()
		h := c.handlers[queue.JobAddComment]

		gone := base
		gone.PostID = "missing"
		assert.Error(t, h(context.Background(), commentJob(t, gone)))
	})
}

func TestIncrementCommentsHandler(t *testing.T) {
	c, _, posts, _, _ := newCommentFixture()
	h := c.handlers[queue.JobIncrementComments]

	raw, err := json.Marshal(queue.IncrementCommentsJob{PostID: "p1"})
	require.NoError(t, err)
	job := &Job{Name: queue.JobIncrementComments, Payload: raw, logger: discardLogger()}

	// 重投递再执行一次就是再加一，恢复一致靠对账任务
	require.NoError(t, h(context.Background(), job))
	require.NoError(t, h(context.Background(), job))
	assert.Equal(t, int64(2), posts.post.CommentsCount)
}
