package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JhonaMR/Prendas-sub005/internal/service"
	"github.com/JhonaMR/Prendas-sub005/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	loc       *time.Location
	now       func() time.Time
}

// NewExportHandler 创建 ExportHandler
// tz 为业务时区名；无法加载时退回 UTC
func NewExportHandler(exportSvc service.ExportService, tz string) *ExportHandler {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &ExportHandler{exportSvc: exportSvc, loc: loc, now: time.Now}
}

const exportDateLayout = "2006-01-02"

// exportDefaultWindow 未传区间时默认导出未来90天
const exportDefaultWindow = 90 * 24 * time.Hour

// parseExportRange 解析 from/to 查询参数，缺省为 [今天, 今天+90天]
// "今天"按业务时区取日界，再落到 UTC 午夜与解析出的日期同坐标比较
func (h *ExportHandler) parseExportRange(c *gin.Context) (time.Time, time.Time, bool) {
	local := h.now().In(h.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	from, to := today, today.Add(exportDefaultWindow)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(exportDateLayout, raw)
		if err != nil {
			response.BadRequest(c, 10001, "from 日期格式无效")
			return from, to, false
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(exportDateLayout, raw)
		if err != nil {
			response.BadRequest(c, 10001, "to 日期格式无效")
			return from, to, false
		}
		to = t
	}
	if to.Before(from) {
		response.BadRequest(c, 10001, "to 不能早于 from")
		return from, to, false
	}
	return from, to, true
}

// ExportExcel 导出交付排期 Excel
// GET /api/v1/export/delivery-dates.xlsx?from=&to=
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	from, to, ok := h.parseExportRange(c)
	if !ok {
		return
	}

	data, err := h.exportSvc.DeliveryDatesExcel(c.Request.Context(), from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("entregas_%s_%s.xlsx",
		from.Format(exportDateLayout), to.Format(exportDateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportCalendar 导出交付排期 iCalendar 订阅
// GET /api/v1/export/delivery-dates.ics?from=&to=
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	from, to, ok := h.parseExportRange(c)
	if !ok {
		return
	}

	ics, err := h.exportSvc.DeliveryDatesCalendar(c.Request.Context(), from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="entregas.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
