package model

// Confeccionista 外协加工户 — 对应 confeccionistas
type Confeccionista struct {
	ConfeccionistaID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"confeccionista_id"`
	Name             string `gorm:"type:varchar(100);not null"                     json:"name"`
	NIT              string `gorm:"column:nit;type:varchar(30)"                    json:"nit,omitempty"`
	Phone            string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Address          string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	City             string `gorm:"type:varchar(60)"                               json:"city,omitempty"`
	IsActive         bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

func (Confeccionista) TableName() string { return "confeccionistas" }
