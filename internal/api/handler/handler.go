package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Confeccionista *ConfeccionistaHandler
	Reference      *ReferenceHandler
	DeliveryDate   *DeliveryDateHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Confeccionista: NewConfeccionistaHandler(svc.Confeccionista),
		Reference:      NewReferenceHandler(svc.Reference),
		DeliveryDate:   NewDeliveryDateHandler(svc.DeliveryDate),
		Export:         NewExportHandler(svc.Export, cfg.Server.Timezone),
	}
}

// callerID 取调用方标识供审计字段使用
// 本服务跑在车间内网，网关注入 X-User-ID；缺失时审计字段留空
func callerID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

