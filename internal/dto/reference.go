package dto

// ── 款号模块 DTO ──

// CreateReferenceRequest 创建款号请求
type CreateReferenceRequest struct {
	Code        string   `json:"code"        binding:"required,min=1,max=50"`
	Description string   `json:"description" binding:"omitempty,max=200"`
	Sizes       []string `json:"sizes"       binding:"omitempty,dive,min=1,max=10"`
}

// UpdateReferenceRequest 更新款号请求
type UpdateReferenceRequest struct {
	Code        *string  `json:"code"        binding:"omitempty,min=1,max=50"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Sizes       []string `json:"sizes"       binding:"omitempty,dive,min=1,max=10"`
	IsActive    *bool    `json:"is_active"`
}

// ReferenceListRequest 款号列表查询参数
type ReferenceListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ReferenceResponse 款号详细信息响应
type ReferenceResponse struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	IsActive    bool     `json:"is_active"`
	Version     int      `json:"version"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
