package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/pkg"
	"Wave_Social/internal/queue"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	auth       AuthStore
	userCache  UserCache
	dispatcher Dispatcher
	uploader   pkg.Uploader
	jwtSecret  []byte
	clientURL  string
}

func NewAuthService(auth AuthStore, userCache UserCache, dispatcher Dispatcher, uploader pkg.Uploader, jwtSecret []byte, clientURL string) *AuthService {
	return &AuthService{
		auth:       auth,
		userCache:  userCache,
		dispatcher: dispatcher,
		uploader:   uploader,
		jwtSecret:  jwtSecret,
		clientURL:  clientURL,
	}
}

type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	AvatarColor string
	AvatarImage []byte
}

type RegisterResult struct {
	User  *model.User
	Token string
}

// Register 注册写路径：查重 → 生成标识 → 传头像 → 写缓存投影 → 入队落库 → 返回。
// 头像是实体的一部分，上传失败整个注册失败，没有"先建号后补头像"的中间态。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, ErrValidation
	}
	username := pkg.FirstLetterUppercase(in.Username)
	email := strings.ToLower(in.Email)

	exists, err := s.auth.Exists(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	authID := uuid.NewString()
	userID := uuid.NewString()
	uID, err := pkg.RandDigits(12)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var profilePicture string
	if len(in.AvatarImage) > 0 {
		uploaded, err := s.uploader.UploadImage(ctx, in.AvatarImage, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: avatar upload: %v", ErrExternalDependency, err)
		}
		profilePicture = s.uploader.ImageURL(uploaded.Version, uploaded.PublicID)
	}

	now := time.Now().UTC()
	authUser := model.AuthUser{
		ID:          authID,
		UID:         uID,
		Username:    username,
		Email:       email,
		Password:    string(hash),
		AvatarColor: in.AvatarColor,
		CreatedAt:   now,
	}
	user := model.User{
		ID:             userID,
		AuthID:         authID,
		UID:            uID,
		Username:       username,
		Email:          email,
		AvatarColor:    in.AvatarColor,
		ProfilePicture: profilePicture,
		Notifications: model.NotificationSettings{
			Messages:  true,
			Reactions: true,
			Comments:  true,
			Follows:   true,
		},
		CreatedAt: now,
	}

	// 缓存写失败就不能继续：后面的入队以缓存可见为前提
	if err = s.userCache.SaveUser(ctx, &user); err != nil {
		return nil, err
	}
	if err = s.dispatcher.Enqueue(ctx, queue.QueueAuth, queue.JobAddAuthUser, authID, queue.AddAuthUserJob{AuthUser: authUser}); err != nil {
		return nil, err
	}
	if err = s.dispatcher.Enqueue(ctx, queue.QueueUser, queue.JobAddUser, userID, queue.AddUserJob{User: user}); err != nil {
		return nil, err
	}

	token, err := pkg.SignToken(s.jwtSecret, userID, uID, username, email, in.AvatarColor)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{User: &user, Token: token}, nil
}

// Login 校验口令并签发 token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	au, err := s.auth.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(au.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return pkg.SignToken(s.jwtSecret, au.ID, au.UID, au.Username, au.Email, au.AvatarColor)
}

// ForgotPassword 生成重置令牌并投递找回邮件；邮件走队列，不阻塞请求
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	au, err := s.auth.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return ErrValidation
	}
	token, err := pkg.RandHex(20)
	if err != nil {
		return err
	}
	if err = s.auth.SaveResetToken(ctx, au.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}
	return s.dispatcher.Enqueue(ctx, queue.QueueEmail, queue.JobSendForgotPassword, au.ID, queue.SendEmailJob{
		ReceiverEmail: au.Email,
		Subject:       "Reset your password",
		Template:      "forgot-password",
		Variables: map[string]string{
			"username":  au.Username,
			"resetLink": fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, token),
		},
	})
}

// ResetPassword 按令牌重置密码，成功后投递确认邮件
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, ipaddress string) error {
	if token == "" || newPassword == "" {
		return ErrValidation
	}
	au, err := s.auth.FindByResetToken(ctx, token)
	if err != nil || au == nil {
		return ErrResetTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.auth.UpdatePassword(ctx, au.ID, string(hash)); err != nil {
		return err
	}
	return s.dispatcher.Enqueue(ctx, queue.QueueEmail, queue.JobSendResetPassword, au.ID, queue.SendEmailJob{
		ReceiverEmail: au.Email,
		Subject:       "Password Reset Confirmation",
		Template:      "reset-password",
		Variables: map[string]string{
			"username":  au.Username,
			"email":     au.Email,
			"ipaddress": ipaddress,
			"date":      time.Now().UTC().Format("2006-01-02 15:04"),
		},
	})
}
