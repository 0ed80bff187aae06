package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"Wave_Social/internal/queue"

	"github.com/segmentio/kafka-go"
)

// Handler 处理一条任务。返回错误按可重试处理，重试耗尽才算终态失败。
type Handler func(ctx context.Context, job *Job) error

// Job 投递给 handler 的任务视图
type Job struct {
	Name       string
	Payload    json.RawMessage
	EnqueuedAt time.Time
	Attempt    int
	logger     *slog.Logger
}

// Progress 上报阶段性进度，分步任务（落库→刷缓存→通知）用
func (j *Job) Progress(pct int) {
	j.logger.Debug("job progress", "job", j.Name, "progress", pct)
}

// Bind 解析任务负载到具体形状
func (j *Job) Bind(v any) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("bind %s payload: %w", j.Name, err)
	}
	return nil
}

// fetcher 便于测试替换 kafka.Reader
type fetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Queue       string
	Brokers     []string
	GroupID     string
	Concurrency int           // 同队列并行处理上限
	MaxRetries  int           // 首次之外的重试次数
	Backoff     time.Duration // 首次重试等待，之后翻倍
}

// Consumer 绑定一条领域队列。消息按 FIFO 取出，
// 并发度 >1 时完成顺序不保证，handler 不得假设对实体独占。
type Consumer struct {
	queue      string
	reader     fetcher
	handlers   map[string]Handler
	sem        chan struct{}
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func New(cfg Config, logger *slog.Logger) *Consumer {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.GroupID == "" {
		cfg.GroupID = "wave-" + cfg.Queue
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Queue,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newWithReader(cfg, reader, logger)
}

func newWithReader(cfg Config, reader fetcher, logger *slog.Logger) *Consumer {
	return &Consumer{
		queue:      cfg.Queue,
		reader:     reader,
		handlers:   make(map[string]Handler),
		sem:        make(chan struct{}, cfg.Concurrency),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		logger:     logger.With("queue", cfg.Queue),
	}
}

// Handle 注册任务名对应的处理函数，必须在 Run 之前调用
func (c *Consumer) Handle(jobName string, h Handler) {
	c.handlers[jobName] = h
}

// Run 拉取循环，ctx 取消后停止取新消息并返回；在途任务由 Close 等待
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", "concurrency", cap(c.sem))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", c.queue, err)
		}

		select {
		case c.sem <- struct{}{}:
		case <-ctx.Done():
			return nil
		}

		c.wg.Add(1)
		go func(msg kafka.Message) {
			defer func() {
				<-c.sem
				c.wg.Done()
			}()
			if done := c.process(ctx, msg.Value); done {
				// 用独立 ctx 提交位点，避免排空阶段丢提交
				if err := c.reader.CommitMessages(context.Background(), msg); err != nil {
					c.logger.Error("commit failed", "error", err)
				}
			}
		}(msg)
	}
}

// process 执行一条任务。返回 true 表示可以提交位点（成功、终态失败或无人认领），
// false 表示没处理完（关停打断），消息留待重投。
func (c *Consumer) process(ctx context.Context, value []byte) bool {
	var env queue.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		// 坏消息重投也救不回来，记完日志直接跳过
		c.logger.Error("malformed envelope, skipping", "error", err)
		return true
	}

	h, ok := c.handlers[env.Job]
	if !ok {
		c.logger.Warn("no handler for job, skipping", "job", env.Job)
		return true
	}

	job := &Job{
		Name:       env.Job,
		Payload:    env.Payload,
		EnqueuedAt: env.EnqueuedAt,
		logger:     c.logger,
	}

	backoff := c.backoff
	for attempt := 0; ; attempt++ {
		job.Attempt = attempt
		err := h(ctx, job)
		if err == nil {
			c.logger.Debug("job done", "job", env.Job, "attempt", attempt)
			return true
		}
		if attempt >= c.maxRetries {
			// 终态失败：不能悄悄丢，记死信等人工/对账处理
			c.logger.Error("job dead-lettered", "job", env.Job, "attempts", attempt+1, "error", err)
			return true
		}
		c.logger.Warn("job failed, will retry", "job", env.Job, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// Close 等在途任务排空后关闭 reader
func (c *Consumer) Close() error {
	c.wg.Wait()
	return c.reader.Close()
}
