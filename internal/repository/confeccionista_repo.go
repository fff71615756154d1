package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JhonaMR/Prendas-sub005/internal/model"
	pkgerrors "github.com/JhonaMR/Prendas-sub005/pkg/errors"
)

// ConfeccionistaRepository 加工户数据访问接口
type ConfeccionistaRepository interface {
	Create(ctx context.Context, c *model.Confeccionista) error
	GetByID(ctx context.Context, id string) (*model.Confeccionista, error)
	GetByName(ctx context.Context, name string) (*model.Confeccionista, error)
	List(ctx context.Context, includeInactive bool) ([]model.Confeccionista, error)
	Update(ctx context.Context, c *model.Confeccionista) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type confeccionistaRepo struct {
	db *gorm.DB
}

func NewConfeccionistaRepo(db *gorm.DB) ConfeccionistaRepository {
	return &confeccionistaRepo{db: db}
}

func (r *confeccionistaRepo) Create(ctx context.Context, c *model.Confeccionista) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *confeccionistaRepo) GetByID(ctx context.Context, id string) (*model.Confeccionista, error) {
	var c model.Confeccionista
	err := r.db.WithContext(ctx).
		Where("confeccionista_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *confeccionistaRepo) GetByName(ctx context.Context, name string) (*model.Confeccionista, error) {
	var c model.Confeccionista
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *confeccionistaRepo) List(ctx context.Context, includeInactive bool) ([]model.Confeccionista, error) {
	var list []model.Confeccionista
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *confeccionistaRepo) Update(ctx context.Context, c *model.Confeccionista) error {
	oldVersion := c.Version
	result := r.db.WithContext(ctx).
		Model(c).
		Where("confeccionista_id = ? AND version = ?", c.ConfeccionistaID, oldVersion).
		Updates(map[string]interface{}{
			"name":       c.Name,
			"nit":        c.NIT,
			"phone":      c.Phone,
			"address":    c.Address,
			"city":       c.City,
			"is_active":  c.IsActive,
			"updated_by": c.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	c.Version = oldVersion + 1
	return nil
}

func (r *confeccionistaRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Confeccionista{}).
		Where("confeccionista_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
