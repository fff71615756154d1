package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/JhonaMR/Prendas-sub005/internal/repository"
)

// ExportService 交付排期导出
// Excel 给车间对账用，iCalendar 订阅给跟单员的日历客户端用
type ExportService interface {
	DeliveryDatesExcel(ctx context.Context, from, to time.Time) ([]byte, error)
	DeliveryDatesCalendar(ctx context.Context, from, to time.Time) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建导出 Service
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// exportSheet 导出工作表名
const exportSheet = "交付排期"

func (s *exportService) DeliveryDatesExcel(ctx context.Context, from, to time.Time) ([]byte, error) {
	dates, err := s.repo.DeliveryDate.ListByExpectedRange(ctx, from, to)
	if err != nil {
		s.logger.Error("导出查询失败", zap.Error(err))
		return nil, err
	}

	confNames, refCodes, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	header := []interface{}{
		"加工户", "款号", "数量", "发出日期", "预计交付", "实际交付", "工序", "备注",
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}
	// 让日期列宽一点，避免显示成 ####
	_ = f.SetColWidth(exportSheet, "A", "B", 18)
	_ = f.SetColWidth(exportSheet, "D", "F", 14)
	_ = f.SetColWidth(exportSheet, "H", "H", 30)

	for i := range dates {
		d := &dates[i]
		delivered := ""
		if d.DeliveredDate != nil {
			delivered = d.DeliveredDate.Format(dateLayout)
		}
		row := []interface{}{
			displayName(confNames, d.ConfeccionistaID),
			displayName(refCodes, d.ReferenceID),
			d.Quantity,
			d.SendDate.Format(dateLayout),
			d.ExpectedDate.Format(dateLayout),
			delivered,
			d.Process,
			d.Observation,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("交付排期 Excel 已生成",
		zap.Int("rows", len(dates)),
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)))
	return buf.Bytes(), nil
}

func (s *exportService) DeliveryDatesCalendar(ctx context.Context, from, to time.Time) (string, error) {
	dates, err := s.repo.DeliveryDate.ListByExpectedRange(ctx, from, to)
	if err != nil {
		s.logger.Error("导出查询失败", zap.Error(err))
		return "", err
	}

	confNames, refCodes, err := s.loadNames(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Prendas//Entregas//ES")

	now := time.Now()
	for i := range dates {
		d := &dates[i]
		ev := cal.AddEvent(fmt.Sprintf("%s@prendas", d.DeliveryDateID))
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		// 预计交付日按全天事件发布
		ev.SetAllDayStartAt(d.ExpectedDate)
		ev.SetAllDayEndAt(d.ExpectedDate.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("交付 %s × %d（%s）",
			displayName(refCodes, d.ReferenceID),
			d.Quantity,
			displayName(confNames, d.ConfeccionistaID)))
		if d.Observation != "" {
			ev.SetDescription(d.Observation)
		}
	}

	s.logger.Info("交付排期日历已生成", zap.Int("events", len(dates)))
	return cal.Serialize(), nil
}

// loadNames 预载加工户与款号的显示名映射（含停用项，历史排期也要能显示）
func (s *exportService) loadNames(ctx context.Context) (map[string]string, map[string]string, error) {
	confs, err := s.repo.Confeccionista.List(ctx, true)
	if err != nil {
		s.logger.Error("加载加工户名称失败", zap.Error(err))
		return nil, nil, err
	}
	refs, err := s.repo.Reference.List(ctx, true)
	if err != nil {
		s.logger.Error("加载款号编码失败", zap.Error(err))
		return nil, nil, err
	}

	confNames := make(map[string]string, len(confs))
	for i := range confs {
		confNames[confs[i].ConfeccionistaID] = confs[i].Name
	}
	refCodes := make(map[string]string, len(refs))
	for i := range refs {
		refCodes[refs[i].ReferenceID] = refs[i].Code
	}
	return confNames, refCodes, nil
}

// displayName 查显示名，查不到时退回原始 ID
func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
