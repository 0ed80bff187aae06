package pkg

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrUploadFailed = errors.New("image upload failed")

// UploadResult 上传结果，Version+PublicID 拼出图片地址
type UploadResult struct {
	PublicID string
	Version  string
}

// Uploader 图片上传是外部依赖，失败按 bad gateway 处理
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, publicID string) (UploadResult, error)
	ImageURL(version, publicID string) string
}

// LocalUploader 落本地磁盘的实现，线上替换为云存储适配器
type LocalUploader struct {
	Dir     string
	BaseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{Dir: dir, BaseURL: baseURL}
}

func (u *LocalUploader) UploadImage(ctx context.Context, data []byte, publicID string) (UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return UploadResult{}, err
	}
	if len(data) == 0 {
		return UploadResult{}, ErrUploadFailed
	}
	sum := sha1.Sum(data)
	version := hex.EncodeToString(sum[:8])
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return UploadResult{}, ErrUploadFailed
	}
	path := filepath.Join(u.Dir, fmt.Sprintf("%s-%s.img", publicID, version))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return UploadResult{}, ErrUploadFailed
	}
	return UploadResult{PublicID: publicID, Version: version}, nil
}

func (u *LocalUploader) ImageURL(version, publicID string) string {
	return fmt.Sprintf("%s/%s/%s.img", u.BaseURL, version, publicID)
}
