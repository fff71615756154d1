package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JhonaMR/Prendas-sub005/internal/model"
	pkgerrors "github.com/JhonaMR/Prendas-sub005/pkg/errors"
)

// ReferenceRepository 款号数据访问接口
type ReferenceRepository interface {
	Create(ctx context.Context, ref *model.Reference) error
	GetByID(ctx context.Context, id string) (*model.Reference, error)
	GetByCode(ctx context.Context, code string) (*model.Reference, error)
	List(ctx context.Context, includeInactive bool) ([]model.Reference, error)
	Update(ctx context.Context, ref *model.Reference) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type referenceRepo struct {
	db *gorm.DB
}

func NewReferenceRepo(db *gorm.DB) ReferenceRepository {
	return &referenceRepo{db: db}
}

func (r *referenceRepo) Create(ctx context.Context, ref *model.Reference) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *referenceRepo) GetByID(ctx context.Context, id string) (*model.Reference, error) {
	var ref model.Reference
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", id).
		First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *referenceRepo) GetByCode(ctx context.Context, code string) (*model.Reference, error) {
	var ref model.Reference
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *referenceRepo) List(ctx context.Context, includeInactive bool) ([]model.Reference, error) {
	var list []model.Reference
	q := r.db.WithContext(ctx).Order("code ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *referenceRepo) Update(ctx context.Context, ref *model.Reference) error {
	oldVersion := ref.Version
	result := r.db.WithContext(ctx).
		Model(ref).
		Where("reference_id = ? AND version = ?", ref.ReferenceID, oldVersion).
		Updates(map[string]interface{}{
			"code":        ref.Code,
			"description": ref.Description,
			"sizes":       ref.Sizes,
			"is_active":   ref.IsActive,
			"updated_by":  ref.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	ref.Version = oldVersion + 1
	return nil
}

func (r *referenceRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Reference{}).
		Where("reference_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
