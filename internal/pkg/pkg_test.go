package pkg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandDigits(t *testing.T) {
	s, err := RandDigits(12)
	require.NoError(t, err)
	assert.Len(t, s, 12)
	for _, c := range s {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestRandHex(t *testing.T) {
	a, err := RandHex(20)
	require.NoError(t, err)
	b, err := RandHex(20)
	require.NoError(t, err)
	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestFirstLetterUppercase(t *testing.T) {
	assert.Equal(t, "Amy", FirstLetterUppercase("amy"))
	assert.Equal(t, "Amy", FirstLetterUppercase("AMY"))
	assert.Equal(t, "", FirstLetterUppercase(""))
	assert.Equal(t, "A", FirstLetterUppercase("a"))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	token, err := SignToken(secret, "u1", "000000000001", "Amy", "amy@example.com", "#ff0000")
	require.NoError(t, err)

	claims, err := ParseAccess(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Amy", claims.Username)
	assert.Equal(t, "amy@example.com", claims.Email)

	_, err = ParseAccess([]byte("wrong"), token)
	assert.Error(t, err)
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "http://cdn.test")

	res, err := u.UploadImage(context.Background(), []byte("image-bytes"), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", res.PublicID)
	assert.NotEmpty(t, res.Version)

	path := filepath.Join(dir, "p1-"+res.Version+".img")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	assert.Equal(t, "http://cdn.test/"+res.Version+"/p1.img", u.ImageURL(res.Version, "p1"))

	_, err = u.UploadImage(context.Background(), nil, "p2")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestEmailTemplates(t *testing.T) {
	assert.Contains(t, NotificationHTML("Amy", "标题", "内容"), "Amy")
	assert.Contains(t, ForgotPasswordHTML("Amy", "http://x/reset"), "http://x/reset")
	html := ResetPasswordHTML("Amy", "amy@example.com", "10.0.0.1", "2026-01-01")
	assert.Contains(t, html, "10.0.0.1")
	assert.Contains(t, html, "amy@example.com")
}
