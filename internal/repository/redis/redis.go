package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client

	// ErrCacheWrite 快路径写失败，本次创建请求必须整体失败
	ErrCacheWrite = errors.New("cache write failed")
	ErrCacheRead  = errors.New("cache read failed")
)

// Init 初始化 Redis 客户端并做一次 Ping 健康检查。
func Init(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return Client.Ping(ctx).Err()
}

func zMember(score float64, member string) redis.Z {
	return redis.Z{Score: score, Member: member}
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Close 关闭 Redis 客户端（在程序退出时调用）。
func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}
