package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/JhonaMR/Prendas-sub005/config"
)

// Client Redis 客户端封装
// 当前用于列表缓存（按实体类型失效）与速率限制；连接失败时上层降级运行
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 实体列表缓存 ──
//
// 键格式：cache:<entity>:<key>
// 失效粒度为实体类型整体：任一写路径成功后删除该实体下全部缓存键

const cachePrefix = "cache:"

func cacheKey(entity, key string) string {
	return cachePrefix + entity + ":" + key
}

// GetCached 读取缓存值；未命中返回 (nil, nil)
func (c *Client) GetCached(ctx context.Context, entity, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, cacheKey(entity, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// SetCached 写入缓存值
func (c *Client) SetCached(ctx context.Context, entity, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, cacheKey(entity, key), value, ttl).Err()
}

// InvalidateEntity 按实体类型整体失效
// SCAN 游标遍历避免 KEYS 阻塞；供提交成功后的 fire-and-forget 通知调用
func (c *Client) InvalidateEntity(ctx context.Context, entity string) error {
	var cursor uint64
	pattern := cachePrefix + entity + ":*"
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流
// 返回 true 表示放行；首次命中时设置窗口过期
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
