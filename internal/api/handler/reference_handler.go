package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/service"
	pkgerrors "github.com/JhonaMR/Prendas-sub005/pkg/errors"
	"github.com/JhonaMR/Prendas-sub005/pkg/response"
)

// ReferenceHandler 款号模块 HTTP 处理器
type ReferenceHandler struct {
	refSvc service.ReferenceService
}

// NewReferenceHandler 创建 ReferenceHandler
func NewReferenceHandler(refSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refSvc: refSvc}
}

// ListReferences 获取款号列表
// GET /api/v1/references
func (h *ReferenceHandler) ListReferences(c *gin.Context) {
	var req dto.ReferenceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.refSvc.List(c.Request.Context(), req.IncludeInactive)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetReference 获取款号详情
// GET /api/v1/references/:id
func (h *ReferenceHandler) GetReference(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "款号ID不能为空")
		return
	}

	ref, err := h.refSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleReferenceError(c, err)
		return
	}

	response.OK(c, ref)
}

// CreateReference 创建款号
// POST /api/v1/references
func (h *ReferenceHandler) CreateReference(c *gin.Context) {
	var req dto.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ref, err := h.refSvc.Create(c.Request.Context(), &req, callerID(c))
	if err != nil {
		h.handleReferenceError(c, err)
		return
	}

	response.Created(c, ref)
}

// UpdateReference 更新款号
// PUT /api/v1/references/:id
func (h *ReferenceHandler) UpdateReference(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "款号ID不能为空")
		return
	}

	var req dto.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ref, err := h.refSvc.Update(c.Request.Context(), id, &req, callerID(c))
	if err != nil {
		h.handleReferenceError(c, err)
		return
	}

	response.OK(c, ref)
}

// DeleteReference 删除款号
// DELETE /api/v1/references/:id
func (h *ReferenceHandler) DeleteReference(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "款号ID不能为空")
		return
	}

	if err := h.refSvc.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		h.handleReferenceError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleReferenceError 统一处理款号模块业务错误
func (h *ReferenceHandler) handleReferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReferenceNotFound):
		response.NotFound(c, 12001, "款号不存在")
	case errors.Is(err, service.ErrReferenceCodeExists):
		response.BadRequest(c, 12002, "款号编码已存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10003, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
