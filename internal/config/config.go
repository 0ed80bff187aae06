package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"Wave_Social/internal/pkg"
)

type Config struct {
	// Addr HTTP 监听地址
	Addr string

	// MySQLDSN 数据库连接串
	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KafkaBrokers 逗号分隔
	KafkaBrokers []string

	JWTSecret []byte

	// ClientURL 前端地址，拼重置密码链接用
	ClientURL string

	// UploadDir 本地图片落盘目录
	UploadDir string

	SMTP pkg.SMTPConfig
}

// Load 全部走环境变量，缺省值适合本地起一套依赖直接跑
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getenv("WAVE_ADDR", ":8080"),
		MySQLDSN:      getenv("WAVE_MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/wave?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getenv("WAVE_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("WAVE_REDIS_PASSWORD"),
		ClientURL:     getenv("WAVE_CLIENT_URL", "http://localhost:3000"),
		UploadDir:     getenv("WAVE_UPLOAD_DIR", "./uploads"),
	}

	if d := os.Getenv("WAVE_REDIS_DB"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return nil, fmt.Errorf("invalid WAVE_REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	cfg.KafkaBrokers = strings.Split(getenv("WAVE_KAFKA_BROKERS", "127.0.0.1:9092"), ",")

	secret := os.Getenv("WAVE_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("WAVE_JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	smtpPort := 587
	if p := os.Getenv("WAVE_SMTP_PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid WAVE_SMTP_PORT: %w", err)
		}
		smtpPort = n
	}
	cfg.SMTP = pkg.SMTPConfig{
		Host:     getenv("WAVE_SMTP_HOST", "127.0.0.1"),
		Port:     smtpPort,
		Username: os.Getenv("WAVE_SMTP_USERNAME"),
		Password: os.Getenv("WAVE_SMTP_PASSWORD"),
		From:     getenv("WAVE_SMTP_FROM", "Wave <no-reply@wave.local>"),
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
