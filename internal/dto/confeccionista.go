package dto

// ── 加工户模块 DTO ──

// CreateConfeccionistaRequest 创建加工户请求
type CreateConfeccionistaRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	NIT     string `json:"nit"     binding:"omitempty,max=30"`
	Phone   string `json:"phone"   binding:"omitempty,max=30"`
	Address string `json:"address" binding:"omitempty,max=200"`
	City    string `json:"city"    binding:"omitempty,max=60"`
}

// UpdateConfeccionistaRequest 更新加工户请求
type UpdateConfeccionistaRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	NIT      *string `json:"nit"       binding:"omitempty,max=30"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	Address  *string `json:"address"   binding:"omitempty,max=200"`
	City     *string `json:"city"      binding:"omitempty,max=60"`
	IsActive *bool   `json:"is_active"`
}

// ConfeccionistaListRequest 加工户列表查询参数
type ConfeccionistaListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ConfeccionistaResponse 加工户详细信息响应
type ConfeccionistaResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NIT       string `json:"nit,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	IsActive  bool   `json:"is_active"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
