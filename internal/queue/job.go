package queue

import (
	"encoding/json"
	"time"

	"Wave_Social/internal/model"
)

// 每个领域一条队列，对应一个 kafka topic
const (
	QueueAuth     = "auth"
	QueueUser     = "user"
	QueuePost     = "post"
	QueueReaction = "reaction"
	QueueComment  = "comment"
	QueueEmail    = "email"
)

// 各队列的任务名，生产者和消费者独立部署时这个集合不能随意改动
const (
	JobAddAuthUser        = "addAuthUserToDB"
	JobAddUser            = "addUserToDB"
	JobAddPost            = "addPostToDB"
	JobAddPostReaction    = "addPostReactionToDB"
	JobAddComment         = "addCommentToDB"
	JobIncrementComments  = "incrementCommentsCount"
	JobSendNotification   = "sendNotificationEmail"
	JobSendForgotPassword = "sendForgotPasswordEmail"
	JobSendResetPassword  = "sendResetPasswordEmail"
)

// Envelope 入队后不可变，Payload 由任务名决定具体形状
type Envelope struct {
	Job        string          `json:"job"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

type AddAuthUserJob struct {
	AuthUser model.AuthUser `json:"authUser"`
}

type AddUserJob struct {
	User model.User `json:"user"`
}

type AddPostJob struct {
	Post model.Post `json:"post"`
}

type AddReactionJob struct {
	Reaction        model.Reaction `json:"reaction"`
	PreviousFeeling model.Feeling  `json:"previousFeeling,omitempty"`
}

type AddCommentJob struct {
	Comment  model.Comment `json:"comment"`
	PostID   string        `json:"postId"`
	UserFrom string        `json:"userFrom"`
	UserTo   string        `json:"userTo"`
	Username string        `json:"username"`
}

type IncrementCommentsJob struct {
	PostID string `json:"postId"`
}

type SendEmailJob struct {
	ReceiverEmail string            `json:"receiverEmail"`
	Subject       string            `json:"subject"`
	Template      string            `json:"template"`
	Variables     map[string]string `json:"variables"`
}
