package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// NotificationHTML 互动通知邮件（评论/表情/关注共用一个模板）
func NotificationHTML(username, header, message string) string {
	return fmt.Sprintf(`<p>您好 %s，</p><h3>%s</h3><p>%s</p><p>登录后可在通知中心查看详情。</p>`, username, header, message)
}

// ForgotPasswordHTML 找回密码邮件，带重置链接
func ForgotPasswordHTML(username, resetLink string) string {
	return fmt.Sprintf(`<p>您好 %s，</p><p>您正在找回密码，请点击链接完成重置：<a href="%s">%s</a></p><p>若非本人操作请忽略本邮件。</p>`, username, resetLink, resetLink)
}

// ResetPasswordHTML 密码重置成功的确认邮件
func ResetPasswordHTML(username, email, ipaddress, date string) string {
	return fmt.Sprintf(`<p>您好 %s，</p><p>账号 %s 的密码已于 %s 重置，操作 IP：%s。</p><p>若非本人操作请立即联系我们。</p>`, username, email, date, ipaddress)
}
