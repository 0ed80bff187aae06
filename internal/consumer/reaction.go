package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
	"Wave_Social/internal/service"
)

type ReactionStore interface {
	Upsert(ctx context.Context, r *model.Reaction) error
}

// ReactionPostStore 计数调整必须在数据库侧原子完成，handler 之间会抢同一个帖子
type ReactionPostStore interface {
	UpdateReactionCounts(ctx context.Context, postID string, feeling, previous model.Feeling) (*model.Post, error)
}

type ReactionAggregateCache interface {
	SavePostReactions(ctx context.Context, postID string, counts model.Reactions) error
}

// NewReactionConsumer reaction 队列，并发 5：表情高峰是突发的，
// 同帖并发依赖 UpdateReactionCounts 的原子增减收敛。
func NewReactionConsumer(brokers []string, reactions ReactionStore, posts ReactionPostStore, cache ReactionAggregateCache, users UserFinder, notifier Notifier, enq Enqueuer, logger *slog.Logger) *Consumer {
	c := New(Config{Queue: queue.QueueReaction, Brokers: brokers, Concurrency: 5}, logger)
	c.Handle(queue.JobAddPostReaction, func(ctx context.Context, job *Job) error {
		var data queue.AddReactionJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		r := data.Reaction

		if err := reactions.Upsert(ctx, &r); err != nil {
			return err
		}
		post, err := posts.UpdateReactionCounts(ctx, r.PostID, r.Feeling, data.PreviousFeeling)
		if err != nil {
			return err
		}
		job.Progress(50)

		if err = cache.SavePostReactions(ctx, post.ID, post.Reactions); err != nil {
			return err
		}
		job.Progress(75)

		message := fmt.Sprintf("%s reacted to your post", r.Username)
		n, err := notifier.Insert(ctx, service.InsertNotificationParams{
			UserFrom:         r.UserFrom,
			UserTo:           r.UserTo,
			Message:          message,
			NotificationType: model.NotificationReactions,
			EntityID:         r.PostID,
			CreatedItemID:    r.ID,
			Post:             post.Text,
			ImgID:            post.ImgID,
			ImgVersion:       post.ImgVersion,
			GifURL:           post.GifURL,
			Reaction:         string(r.Feeling),
		})
		if err != nil {
			return err
		}
		if n != nil {
			recipient, err := users.FindByID(ctx, r.UserTo)
			if err != nil {
				return err
			}
			if err = enq.Enqueue(ctx, queue.QueueEmail, queue.JobSendNotification, r.UserTo, queue.SendEmailJob{
				ReceiverEmail: recipient.Email,
				Subject:       "Post notification",
				Template:      "notification",
				Variables: map[string]string{
					"username": recipient.Username,
					"header":   "Reaction notification",
					"message":  message,
				},
			}); err != nil {
				return err
			}
		}
		job.Progress(100)
		return nil
	})
	return c
}
