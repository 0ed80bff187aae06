package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event 广播事件，Event 形如 add-post / add-reaction / add-comment
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub 维护全部在线连接。广播是尽力而为：不落盘、不确认，
// 掉线的客户端自己回读缓存/数据库补状态，不做事件重投。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("ws client registered", "total", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			raw, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("marshal broadcast", "event", ev.Event, "error", err)
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- raw:
				default:
					// 发送缓冲满说明客户端跟不上，直接丢，at-most-once
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish 把新建实体推给所有在线客户端，永不阻塞调用方
func (h *Hub) Publish(event string, payload any) {
	select {
	case h.broadcast <- Event{Event: event, Data: payload}:
	default:
		h.logger.Warn("broadcast channel full, event dropped", "event", event)
	}
}
