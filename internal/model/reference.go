package model

// Reference 款号 — 对应 garment_references
// 注：表名避开 SQL 保留词 references
type Reference struct {
	ReferenceID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reference_id"`
	Code        string      `gorm:"type:varchar(50);not null"                      json:"code"`
	Description string      `gorm:"type:varchar(200)"                              json:"description,omitempty"`
	Sizes       StringArray `gorm:"type:text[]"                                    json:"sizes,omitempty"`
	IsActive    bool        `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

func (Reference) TableName() string { return "garment_references" }
