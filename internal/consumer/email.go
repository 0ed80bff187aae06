package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"Wave_Social/internal/pkg"
	"Wave_Social/internal/queue"
)

// SendFunc 默认是 pkg.SendEmail，测试时替换
type SendFunc func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error

// NewEmailConsumer email 队列：通知、找回密码、重置确认三类邮件
func NewEmailConsumer(brokers []string, smtp pkg.SMTPConfig, send SendFunc, logger *slog.Logger) *Consumer {
	if send == nil {
		send = pkg.SendEmail
	}
	c := New(Config{Queue: queue.QueueEmail, Brokers: brokers}, logger)

	handler := func(ctx context.Context, job *Job) error {
		var data queue.SendEmailJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		v := data.Variables
		var html string
		switch data.Template {
		case "notification":
			html = pkg.NotificationHTML(v["username"], v["header"], v["message"])
		case "forgot-password":
			html = pkg.ForgotPasswordHTML(v["username"], v["resetLink"])
		case "reset-password":
			html = pkg.ResetPasswordHTML(v["username"], v["email"], v["ipaddress"], v["date"])
		default:
			return fmt.Errorf("unknown email template %q", data.Template)
		}
		return send(smtp, data.ReceiverEmail, data.Subject, html)
	}

	c.Handle(queue.JobSendNotification, handler)
	c.Handle(queue.JobSendForgotPassword, handler)
	c.Handle(queue.JobSendResetPassword, handler)
	return c
}
