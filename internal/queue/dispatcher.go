package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
}

// writer 便于测试替换 kafka.Writer
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Dispatcher 生产侧入队器，每条领域队列一个 writer。
// Enqueue 只等 broker 确认，不等消费者落库；对调用方是"入队即返回"。
type Dispatcher struct {
	writers map[string]writer
	logger  *slog.Logger
}

func NewDispatcher(cfg KafkaConfig, logger *slog.Logger) *Dispatcher {
	queues := []string{QueueAuth, QueueUser, QueuePost, QueueReaction, QueueComment, QueueEmail}
	writers := make(map[string]writer, len(queues))
	for _, q := range queues {
		writers[q] = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        q,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		}
	}
	return &Dispatcher{writers: writers, logger: logger}
}

// Enqueue 序列化任务信封写入对应队列。key 取实体 ID，保证同一实体按提交顺序进同一分区。
// 写失败必须向上抛：缓存已可见而任务没落队列，这次创建不能算成功。
func (d *Dispatcher) Enqueue(ctx context.Context, queueName, jobName, key string, payload any) error {
	w, ok := d.writers[queueName]
	if !ok {
		return fmt.Errorf("unknown queue %q", queueName)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", jobName, err)
	}
	env := Envelope{
		Job:        jobName,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", jobName, err)
	}

	if err = w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		d.logger.Error("enqueue failed", "queue", queueName, "job", jobName, "key", key, "error", err)
		return fmt.Errorf("enqueue %s/%s: %w", queueName, jobName, err)
	}
	d.logger.Debug("job enqueued", "queue", queueName, "job", jobName, "key", key)
	return nil
}

func (d *Dispatcher) Close() error {
	var firstErr error
	for q, w := range d.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close writer %s: %w", q, err)
		}
	}
	return firstErr
}
