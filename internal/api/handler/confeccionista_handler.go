package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/service"
	pkgerrors "github.com/JhonaMR/Prendas-sub005/pkg/errors"
	"github.com/JhonaMR/Prendas-sub005/pkg/response"
)

// ConfeccionistaHandler 加工户模块 HTTP 处理器
type ConfeccionistaHandler struct {
	confSvc service.ConfeccionistaService
}

// NewConfeccionistaHandler 创建 ConfeccionistaHandler
func NewConfeccionistaHandler(confSvc service.ConfeccionistaService) *ConfeccionistaHandler {
	return &ConfeccionistaHandler{confSvc: confSvc}
}

// ListConfeccionistas 获取加工户列表
// GET /api/v1/confeccionistas
func (h *ConfeccionistaHandler) ListConfeccionistas(c *gin.Context) {
	var req dto.ConfeccionistaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.confSvc.List(c.Request.Context(), req.IncludeInactive)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetConfeccionista 获取加工户详情
// GET /api/v1/confeccionistas/:id
func (h *ConfeccionistaHandler) GetConfeccionista(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "加工户ID不能为空")
		return
	}

	conf, err := h.confSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleConfeccionistaError(c, err)
		return
	}

	response.OK(c, conf)
}

// CreateConfeccionista 创建加工户
// POST /api/v1/confeccionistas
func (h *ConfeccionistaHandler) CreateConfeccionista(c *gin.Context) {
	var req dto.CreateConfeccionistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	conf, err := h.confSvc.Create(c.Request.Context(), &req, callerID(c))
	if err != nil {
		h.handleConfeccionistaError(c, err)
		return
	}

	response.Created(c, conf)
}

// UpdateConfeccionista 更新加工户
// PUT /api/v1/confeccionistas/:id
func (h *ConfeccionistaHandler) UpdateConfeccionista(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "加工户ID不能为空")
		return
	}

	var req dto.UpdateConfeccionistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	conf, err := h.confSvc.Update(c.Request.Context(), id, &req, callerID(c))
	if err != nil {
		h.handleConfeccionistaError(c, err)
		return
	}

	response.OK(c, conf)
}

// DeleteConfeccionista 删除加工户
// DELETE /api/v1/confeccionistas/:id
func (h *ConfeccionistaHandler) DeleteConfeccionista(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "加工户ID不能为空")
		return
	}

	if err := h.confSvc.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		h.handleConfeccionistaError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleConfeccionistaError 统一处理加工户模块业务错误
func (h *ConfeccionistaHandler) handleConfeccionistaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConfeccionistaNotFound):
		response.NotFound(c, 11001, "加工户不存在")
	case errors.Is(err, service.ErrConfeccionistaNameExists):
		response.BadRequest(c, 11002, "加工户名称已存在")
	case errors.Is(err, service.ErrConfeccionistaHasPending):
		response.BadRequest(c, 11003, "该加工户仍有未交付排期，不能删除")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10003, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

