package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/model"
	"github.com/JhonaMR/Prendas-sub005/internal/repository"
)

// ── 加工户模块错误 ──

var (
	ErrConfeccionistaNotFound   = errors.New("加工户不存在")
	ErrConfeccionistaNameExists = errors.New("加工户名称已存在")
	ErrConfeccionistaHasPending = errors.New("该加工户仍有未交付排期，不能删除")
)

// ConfeccionistaService 加工户业务接口
type ConfeccionistaService interface {
	Create(ctx context.Context, req *dto.CreateConfeccionistaRequest, callerID string) (*dto.ConfeccionistaResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ConfeccionistaResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ConfeccionistaResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateConfeccionistaRequest, callerID string) (*dto.ConfeccionistaResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type confeccionistaService struct {
	repo     *repository.Repository
	cache    Cache
	cacheCfg *config.CacheConfig
	logger   *zap.Logger
}

// NewConfeccionistaService 创建加工户 Service
func NewConfeccionistaService(repo *repository.Repository, cache Cache, cacheCfg *config.CacheConfig, logger *zap.Logger) ConfeccionistaService {
	return &confeccionistaService{repo: repo, cache: cache, cacheCfg: cacheCfg, logger: logger}
}

func (s *confeccionistaService) Create(ctx context.Context, req *dto.CreateConfeccionistaRequest, callerID string) (*dto.ConfeccionistaResponse, error) {
	// 名称唯一性检查（软删除行不占用名称，见迁移中的部分唯一索引）
	existing, err := s.repo.Confeccionista.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询加工户名称失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrConfeccionistaNameExists
	}

	c := &model.Confeccionista{
		Name:     req.Name,
		NIT:      req.NIT,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		IsActive: true,
	}
	c.CreatedBy = callerRef(callerID)
	c.UpdatedBy = callerRef(callerID)

	if err := s.repo.Confeccionista.Create(ctx, c); err != nil {
		s.logger.Error("创建加工户失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("加工户已创建",
		zap.String("confeccionista_id", c.ConfeccionistaID),
		zap.String("name", c.Name))
	invalidateAsync(s.cache, s.logger, entityConfeccionistas)

	return toConfeccionistaResponse(c), nil
}

func (s *confeccionistaService) GetByID(ctx context.Context, id string) (*dto.ConfeccionistaResponse, error) {
	c, err := s.repo.Confeccionista.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfeccionistaNotFound
		}
		s.logger.Error("查询加工户失败", zap.String("confeccionista_id", id), zap.Error(err))
		return nil, err
	}
	return toConfeccionistaResponse(c), nil
}

func (s *confeccionistaService) List(ctx context.Context, includeInactive bool) ([]dto.ConfeccionistaResponse, error) {
	key := "list:active"
	if includeInactive {
		key = "list:all"
	}

	var cached []dto.ConfeccionistaResponse
	if cacheLookup(ctx, s.cache, s.cacheCfg, s.logger, entityConfeccionistas, key, &cached) {
		return cached, nil
	}

	list, err := s.repo.Confeccionista.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("查询加工户列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.ConfeccionistaResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *toConfeccionistaResponse(&list[i]))
	}

	cacheStore(ctx, s.cache, s.cacheCfg, s.logger, entityConfeccionistas, key, resp)
	return resp, nil
}

func (s *confeccionistaService) Update(ctx context.Context, id string, req *dto.UpdateConfeccionistaRequest, callerID string) (*dto.ConfeccionistaResponse, error) {
	c, err := s.repo.Confeccionista.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfeccionistaNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.repo.Confeccionista.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ConfeccionistaID != id {
			return nil, ErrConfeccionistaNameExists
		}
		c.Name = *req.Name
	}
	if req.NIT != nil {
		c.NIT = *req.NIT
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.UpdatedBy = callerRef(callerID)

	// 乐观锁冲突由 repo 返回 pkgerrors.ErrOptimisticLock，原样上抛
	if err := s.repo.Confeccionista.Update(ctx, c); err != nil {
		return nil, err
	}

	invalidateAsync(s.cache, s.logger, entityConfeccionistas)
	return toConfeccionistaResponse(c), nil
}

func (s *confeccionistaService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Confeccionista.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConfeccionistaNotFound
		}
		return err
	}

	// 仍有未交付排期的加工户不允许删除
	pending, err := s.repo.DeliveryDate.CountPendingByConfeccionista(ctx, id)
	if err != nil {
		s.logger.Error("统计未交付排期失败", zap.String("confeccionista_id", id), zap.Error(err))
		return err
	}
	if pending > 0 {
		return ErrConfeccionistaHasPending
	}

	if err := s.repo.Confeccionista.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除加工户失败", zap.String("confeccionista_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("加工户已删除", zap.String("confeccionista_id", id))
	invalidateAsync(s.cache, s.logger, entityConfeccionistas)
	return nil
}

// callerRef 把调用方 ID 转为审计字段指针，空串视为匿名
func callerRef(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}

func toConfeccionistaResponse(c *model.Confeccionista) *dto.ConfeccionistaResponse {
	return &dto.ConfeccionistaResponse{
		ID:        c.ConfeccionistaID,
		Name:      c.Name,
		NIT:       c.NIT,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		IsActive:  c.IsActive,
		Version:   c.Version,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
