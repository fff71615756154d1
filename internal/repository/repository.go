package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Confeccionista ConfeccionistaRepository
	Reference      ReferenceRepository
	DeliveryDate   DeliveryDateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Confeccionista: NewConfeccionistaRepo(db),
		Reference:      NewReferenceRepo(db),
		DeliveryDate:   NewDeliveryDateRepo(db),
	}
}

