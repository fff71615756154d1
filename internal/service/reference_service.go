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

// ── 款号模块错误 ──

var (
	ErrReferenceNotFound   = errors.New("款号不存在")
	ErrReferenceCodeExists = errors.New("款号编码已存在")
)

// ReferenceService 款号业务接口
type ReferenceService interface {
	Create(ctx context.Context, req *dto.CreateReferenceRequest, callerID string) (*dto.ReferenceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReferenceResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ReferenceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateReferenceRequest, callerID string) (*dto.ReferenceResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type referenceService struct {
	repo     *repository.Repository
	cache    Cache
	cacheCfg *config.CacheConfig
	logger   *zap.Logger
}

// NewReferenceService 创建款号 Service
func NewReferenceService(repo *repository.Repository, cache Cache, cacheCfg *config.CacheConfig, logger *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, cache: cache, cacheCfg: cacheCfg, logger: logger}
}

func (s *referenceService) Create(ctx context.Context, req *dto.CreateReferenceRequest, callerID string) (*dto.ReferenceResponse, error) {
	existing, err := s.repo.Reference.GetByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询款号编码失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrReferenceCodeExists
	}

	ref := &model.Reference{
		Code:        req.Code,
		Description: req.Description,
		Sizes:       model.StringArray(req.Sizes),
		IsActive:    true,
	}
	ref.CreatedBy = callerRef(callerID)
	ref.UpdatedBy = callerRef(callerID)

	if err := s.repo.Reference.Create(ctx, ref); err != nil {
		s.logger.Error("创建款号失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("款号已创建",
		zap.String("reference_id", ref.ReferenceID),
		zap.String("code", ref.Code))
	invalidateAsync(s.cache, s.logger, entityReferences)

	return toReferenceResponse(ref), nil
}

func (s *referenceService) GetByID(ctx context.Context, id string) (*dto.ReferenceResponse, error) {
	ref, err := s.repo.Reference.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceNotFound
		}
		s.logger.Error("查询款号失败", zap.String("reference_id", id), zap.Error(err))
		return nil, err
	}
	return toReferenceResponse(ref), nil
}

func (s *referenceService) List(ctx context.Context, includeInactive bool) ([]dto.ReferenceResponse, error) {
	key := "list:active"
	if includeInactive {
		key = "list:all"
	}

	var cached []dto.ReferenceResponse
	if cacheLookup(ctx, s.cache, s.cacheCfg, s.logger, entityReferences, key, &cached) {
		return cached, nil
	}

	list, err := s.repo.Reference.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("查询款号列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.ReferenceResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *toReferenceResponse(&list[i]))
	}

	cacheStore(ctx, s.cache, s.cacheCfg, s.logger, entityReferences, key, resp)
	return resp, nil
}

func (s *referenceService) Update(ctx context.Context, id string, req *dto.UpdateReferenceRequest, callerID string) (*dto.ReferenceResponse, error) {
	ref, err := s.repo.Reference.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, err
	}

	if req.Code != nil && *req.Code != ref.Code {
		existing, err := s.repo.Reference.GetByCode(ctx, *req.Code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ReferenceID != id {
			return nil, ErrReferenceCodeExists
		}
		ref.Code = *req.Code
	}
	if req.Description != nil {
		ref.Description = *req.Description
	}
	if req.Sizes != nil {
		ref.Sizes = model.StringArray(req.Sizes)
	}
	if req.IsActive != nil {
		ref.IsActive = *req.IsActive
	}
	ref.UpdatedBy = callerRef(callerID)

	if err := s.repo.Reference.Update(ctx, ref); err != nil {
		return nil, err
	}

	invalidateAsync(s.cache, s.logger, entityReferences)
	return toReferenceResponse(ref), nil
}

func (s *referenceService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Reference.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferenceNotFound
		}
		return err
	}

	if err := s.repo.Reference.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除款号失败", zap.String("reference_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("款号已删除", zap.String("reference_id", id))
	invalidateAsync(s.cache, s.logger, entityReferences)
	return nil
}

func toReferenceResponse(ref *model.Reference) *dto.ReferenceResponse {
	return &dto.ReferenceResponse{
		ID:          ref.ReferenceID,
		Code:        ref.Code,
		Description: ref.Description,
		Sizes:       ref.Sizes,
		IsActive:    ref.IsActive,
		Version:     ref.Version,
		CreatedAt:   ref.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ref.UpdatedAt.Format(time.RFC3339),
	}
}

