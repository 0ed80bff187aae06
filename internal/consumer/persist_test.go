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

func jobWith(t *testing.T, name string, payload any) *Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &Job{Name: name, Payload: raw, logger: discardLogger()}
}

func TestAuthConsumerUpserts(t *testing.T) {
	store := &fakeAuthUpserts{}
	c := NewAuthConsumer([]string{"127.0.0.1:9092"}, store, discardLogger())
	h := c.handlers[queue.JobAddAuthUser]

	job := jobWith(t, queue.JobAddAuthUser, queue.AddAuthUserJob{
		AuthUser: model.AuthUser{ID: "a1", Username: "Amy"},
	})
	require.NoError(t, h(context.Background(), job))
	// 重投递不报错，幂等交给 upsert
	require.NoError(t, h(context.Background(), job))

	require.Len(t, store.upserted, 2)
	assert.Equal(t, "a1", store.upserted[0].ID)
}

func TestUserConsumerUpserts(t *testing.T) {
	store := &fakeUserUpserts{}
	c := NewUserConsumer([]string{"127.0.0.1:9092"}, store, discardLogger())
	h := c.handlers[queue.JobAddUser]

	require.NoError(t, h(context.Background(), jobWith(t, queue.JobAddUser, queue.AddUserJob{
		User: model.User{ID: "u1", Username: "Amy"},
	})))
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "u1", store.upserted[0].ID)
}

func TestPostConsumerPersistsAndCountsAuthor(t *testing.T) {
	store := &fakePostUpserts{}
	counts := &fakeAuthorCounts{}
	c := NewPostConsumer([]string{"127.0.0.1:9092"}, store, counts, discardLogger())
	h := c.handlers[queue.JobAddPost]

	require.NoError(t, h(context.Background(), jobWith(t, queue.JobAddPost, queue.AddPostJob{
		Post: model.Post{ID: "p1", UserID: "u1"},
	})))

	require.Len(t, store.upserted, 1)
	assert.Equal(t, int64(1), counts.deltas["u1"])
}
