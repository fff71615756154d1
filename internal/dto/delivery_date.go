package dto

// ── 交付排期模块 DTO ──
//
// 批量端点的 wire 字段沿用前端既有契约（camelCase），
// 与本仓库其余端点的 snake_case 并存属刻意为之：外部契约优先。

// BatchDateInput 批量请求中的单行记录
// id 可为空（新建）、temp_ 前缀（前端临时行，同样视为新建）或既有 UUID（更新）
type BatchDateInput struct {
	ID               string   `json:"id,omitempty"`
	ConfeccionistaID string   `json:"confeccionistaId"`
	ReferenceID      string   `json:"referenceId"`
	Quantity         *float64 `json:"quantity,omitempty"`
	SendDate         string   `json:"sendDate"`
	ExpectedDate     string   `json:"expectedDate"`
	DeliveryDate     string   `json:"deliveryDate,omitempty"`
	Process          string   `json:"process,omitempty"`
	Observation      string   `json:"observation,omitempty"`
}

// BatchDeliveryDatesRequest 批量提交请求
type BatchDeliveryDatesRequest struct {
	Dates []BatchDateInput `json:"dates"`
}

// BatchSummary 批次汇总
type BatchSummary struct {
	Total  int `json:"total"`
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// BatchRowError 账本中的单行失败条目（回显原始记录）
type BatchRowError struct {
	Index  int               `json:"index"`
	Record BatchDateInput    `json:"record"`
	Errors map[string]string `json:"errors"`
}

// BatchDeliveryDatesResponse 批量提交账本响应
// success 为 true 当且仅当 errors 为空
type BatchDeliveryDatesResponse struct {
	Success bool            `json:"success"`
	Summary BatchSummary    `json:"summary"`
	Saved   []string        `json:"saved"`
	Errors  []BatchRowError `json:"errors"`

	// StorageFailed 提交步骤整体失败（HTTP 500），不进 wire
	StorageFailed bool `json:"-"`
}

// ── 单条路径 ──

// UpdateDeliveryDateRequest 单条更新请求
type UpdateDeliveryDateRequest struct {
	ConfeccionistaID *string  `json:"confeccionista_id" binding:"omitempty,min=1,max=60"`
	ReferenceID      *string  `json:"reference_id"      binding:"omitempty,min=1,max=60"`
	Quantity         *int     `json:"quantity"          binding:"omitempty,gt=0"`
	SendDate         *string  `json:"send_date"         binding:"omitempty,datetime=2006-01-02"`
	ExpectedDate     *string  `json:"expected_date"     binding:"omitempty,datetime=2006-01-02"`
	DeliveryDate     *string  `json:"delivery_date"     binding:"omitempty,datetime=2006-01-02"`
	Process          *string  `json:"process"           binding:"omitempty,max=60"`
	Observation      *string  `json:"observation"       binding:"omitempty,max=500"`
}

// DeliveryDateListRequest 交付排期列表查询参数
type DeliveryDateListRequest struct {
	PaginationRequest
	ConfeccionistaID string `form:"confeccionista_id"`
	ReferenceID      string `form:"reference_id"`
	From             string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To               string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// DeliveryDateResponse 交付排期响应
type DeliveryDateResponse struct {
	ID               string `json:"id"`
	ConfeccionistaID string `json:"confeccionista_id"`
	ReferenceID      string `json:"reference_id"`
	Quantity         int    `json:"quantity"`
	SendDate         string `json:"send_date"`
	ExpectedDate     string `json:"expected_date"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	Process          string `json:"process,omitempty"`
	Observation      string `json:"observation,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// [自证通过] internal/dto/delivery_date.go
