package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
	"Wave_Social/internal/service"
)

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
}

type CommentPostStore interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	IncrementCommentsCount(ctx context.Context, postID string) (*model.Post, error)
}

// NewCommentConsumer comment 队列。建档和计数是两个任务名，
// 各自 at-least-once，处理顺序没有约定。
func NewCommentConsumer(brokers []string, comments CommentStore, posts CommentPostStore, users UserFinder, notifier Notifier, enq Enqueuer, logger *slog.Logger) *Consumer {
	c := New(Config{Queue: queue.QueueComment, Brokers: brokers}, logger)

	c.Handle(queue.JobAddComment, func(ctx context.Context, job *Job) error {
		var data queue.AddCommentJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		if err := comments.Create(ctx, &data.Comment); err != nil {
			return err
		}
		post, err := posts.FindByID(ctx, data.PostID)
		if err != nil {
			return err
		}
		job.Progress(50)

		message := fmt.Sprintf("%s commented on your post", data.Username)
		n, err := notifier.Insert(ctx, service.InsertNotificationParams{
			UserFrom:         data.UserFrom,
			UserTo:           data.UserTo,
			Message:          message,
			NotificationType: model.NotificationComments,
			EntityID:         data.PostID,
			CreatedItemID:    data.Comment.ID,
			Comment:          data.Comment.Text,
			Post:             post.Text,
			ImgID:            post.ImgID,
			ImgVersion:       post.ImgVersion,
			GifURL:           post.GifURL,
		})
		if err != nil {
			return err
		}
		if n != nil {
			recipient, err := users.FindByID(ctx, data.UserTo)
			if err != nil {
				return err
			}
			if err = enq.Enqueue(ctx, queue.QueueEmail, queue.JobSendNotification, data.UserTo, queue.SendEmailJob{
				ReceiverEmail: recipient.Email,
				Subject:       "Post notification",
				Template:      "notification",
				Variables: map[string]string{
					"username": recipient.Username,
					"header":   "Comment notification",
					"message":  message,
				},
			}); err != nil {
				return err
			}
		}
		job.Progress(100)
		return nil
	})

	c.Handle(queue.JobIncrementComments, func(ctx context.Context, job *Job) error {
		var data queue.IncrementCommentsJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		_, err := posts.IncrementCommentsCount(ctx, data.PostID)
		return err
	})

	return c
}
