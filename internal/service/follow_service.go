package service

import (
	"context"
	"fmt"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
)

type FollowService struct {
	follows      FollowStore
	users        UserStore
	notification *NotificationService
	dispatcher   Dispatcher
	hub          Broadcaster
}

func NewFollowService(follows FollowStore, users UserStore, notification *NotificationService, dispatcher Dispatcher, hub Broadcaster) *FollowService {
	return &FollowService{
		follows:      follows,
		users:        users,
		notification: notification,
		dispatcher:   dispatcher,
		hub:          hub,
	}
}

// Follow 关注走同步落库（计数在事务里原子调整），仅通知和邮件走异步
func (s *FollowService) Follow(ctx context.Context, actor CurrentUser, followeeID string) (bool, error) {
	if followeeID == "" {
		return false, ErrValidation
	}
	if actor.UserID == followeeID {
		return false, fmt.Errorf("%w: cannot follow self", ErrValidation)
	}
	changed, err := s.follows.Follow(ctx, actor.UserID, followeeID)
	if err != nil || !changed {
		return changed, err
	}

	s.hub.Publish("add-follower", map[string]string{
		"userFrom": actor.UserID,
		"userTo":   followeeID,
		"username": actor.Username,
	})

	message := fmt.Sprintf("%s is now following you", actor.Username)
	n, err := s.notification.Insert(ctx, InsertNotificationParams{
		UserFrom:         actor.UserID,
		UserTo:           followeeID,
		Message:          message,
		NotificationType: model.NotificationFollows,
		EntityID:         actor.UserID,
	})
	if err != nil || n == nil {
		// 判定为不通知或落通知失败都不影响关注本身
		return true, nil
	}
	followee, err := s.users.FindByID(ctx, followeeID)
	if err != nil {
		return true, nil
	}
	_ = s.dispatcher.Enqueue(ctx, queue.QueueEmail, queue.JobSendNotification, followeeID, queue.SendEmailJob{
		ReceiverEmail: followee.Email,
		Subject:       "Follower notification",
		Template:      "notification",
		Variables: map[string]string{
			"username": followee.Username,
			"header":   "Follower notification",
			"message":  message,
		},
	})
	return true, nil
}

func (s *FollowService) Unfollow(ctx context.Context, actor CurrentUser, followeeID string) (bool, error) {
	if followeeID == "" || actor.UserID == followeeID {
		return false, ErrValidation
	}
	return s.follows.Unfollow(ctx, actor.UserID, followeeID)
}

func (s *FollowService) IsFollowing(ctx context.Context, actor CurrentUser, followeeID string) (bool, error) {
	if followeeID == "" {
		return false, ErrValidation
	}
	return s.follows.IsFollowing(ctx, actor.UserID, followeeID)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID string, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.follows.ListFollowers(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowings(ctx context.Context, userID string, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.follows.ListFollowings(ctx, userID, cursor, limit)
}
