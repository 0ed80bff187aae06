package service

import (
	"context"
	"testing"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(ops *[]string) (*CommentService, *fakePostCache, *fakeCommentStore, *fakeDispatcher, *fakeHub) {
	cache := &fakePostCache{ops: ops}
	store := &fakeCommentStore{byPost: map[string][]model.Comment{}}
	dispatcher := &fakeDispatcher{ops: ops}
	hub := &fakeHub{ops: ops}
	svc := NewCommentService(cache, store, dispatcher, hub)
	return svc, cache, store, dispatcher, hub
}

func TestAddComment(t *testing.T) {
	t.Run("comment and counter are two independent jobs", func(t *testing.T) {
		var ops []string
		svc, cache, _, dispatcher, _ := newCommentFixture(&ops)

		comment, err := svc.Add(context.Background(), testActor, AddCommentInput{
			PostID: "p1",
			UserTo: "u2",
			Text:   "nice one",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"publish:add-comment",
			"cache:incrementComments",
			"enqueue:" + queue.JobAddComment,
			"enqueue:" + queue.JobIncrementComments,
		}, ops)

		assert.Equal(t, []string{"p1"}, cache.increments)
		require.Len(t, dispatcher.calls, 2)
		assert.Equal(t, queue.QueueComment, dispatcher.calls[0].Queue)
		assert.Equal(t, queue.QueueComment, dispatcher.calls[1].Queue)

		add := dispatcher.calls[0].Payload.(queue.AddCommentJob)
		assert.Equal(t, comment.ID, add.Comment.ID)
		assert.Equal(t, testActor.UserID, add.UserFrom)
		assert.Equal(t, "u2", add.UserTo)

		incr := dispatcher.calls[1].Payload.(queue.IncrementCommentsJob)
		assert.Equal(t, "p1", incr.PostID)
	})

	t.Run("missing text rejected", func(t *testing.T) {
		svc, _, _, _, _ := newCommentFixture(nil)
		_, err := svc.Add(context.Background(), testActor, AddCommentInput{PostID: "p1"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("cache increment failure aborts before enqueue", func(t *testing.T) {
		svc, cache, _, dispatcher, _ := newCommentFixture(nil)
		cache.incrErr = errBoom

		_, err := svc.Add(context.Background(), testActor, AddCommentInput{PostID: "p1", Text: "hi"})
		assert.Error(t, err)
		assert.Empty(t, dispatcher.calls)
	})

	t.Run("enqueue failure fails the request", func(t *testing.T) {
		svc, _, _, dispatcher, _ := newCommentFixture(nil)
		dispatcher.err = errBoom

		_, err := svc.Add(context.Background(), testActor, AddCommentInput{PostID: "p1", Text: "hi"})
		assert.Error(t, err)
	})
}

func TestListComments(t *testing.T) {
	svc, _, store, _, _ := newCommentFixture(nil)
	store.byPost["p1"] = []model.Comment{{ID: "c1"}, {ID: "c2"}}

	comments, err := svc.ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, err = svc.ListByPost(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}
