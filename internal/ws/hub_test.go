package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub() *Hub {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go h.Run()
	return h
}

// 测试里不升级真连接，直接挂一个带缓冲的客户端
func attachClient(h *Hub) *Client {
	c := &Client{hub: h, send: make(chan []byte, 64)}
	h.register <- c
	return c
}

func TestHubBroadcast(t *testing.T) {
	h := testHub()
	c1 := attachClient(h)
	c2 := attachClient(h)

	h.Publish("add-post", map[string]string{"_id": "p1"})

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var ev Event
			require.NoError(t, json.Unmarshal(raw, &ev))
			assert.Equal(t, "add-post", ev.Event)
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubSlowClientDropped(t *testing.T) {
	h := testHub()
	slow := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- slow

	// 填满发送缓冲后继续广播，慢客户端丢消息但 Publish 不阻塞
	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			h.Publish("add-reaction", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow client")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := testHub()
	c := attachClient(h)

	h.unregister <- c

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}
