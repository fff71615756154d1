package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/JhonaMR/Prendas-sub005/internal/model"
	"github.com/JhonaMR/Prendas-sub005/internal/repository"
)

// ── Mock ConfeccionistaRepository ──

type mockConfeccionistaRepo struct {
	confeccionistas map[string]*model.Confeccionista
}

func newMockConfeccionistaRepo() *mockConfeccionistaRepo {
	return &mockConfeccionistaRepo{confeccionistas: make(map[string]*model.Confeccionista)}
}

func (m *mockConfeccionistaRepo) Create(_ context.Context, c *model.Confeccionista) error {
	if c.ConfeccionistaID == "" {
		c.ConfeccionistaID = "conf-" + c.Name
	}
	m.confeccionistas[c.ConfeccionistaID] = c
	return nil
}

func (m *mockConfeccionistaRepo) GetByID(_ context.Context, id string) (*model.Confeccionista, error) {
	if c, ok := m.confeccionistas[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfeccionistaRepo) GetByName(_ context.Context, name string) (*model.Confeccionista, error) {
	for _, c := range m.confeccionistas {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfeccionistaRepo) List(_ context.Context, includeInactive bool) ([]model.Confeccionista, error) {
	var result []model.Confeccionista
	for _, c := range m.confeccionistas {
		if !includeInactive && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockConfeccionistaRepo) Update(_ context.Context, c *model.Confeccionista) error {
	if _, ok := m.confeccionistas[c.ConfeccionistaID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c.Version++
	m.confeccionistas[c.ConfeccionistaID] = c
	return nil
}

func (m *mockConfeccionistaRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.confeccionistas, id)
	return nil
}

// ── Mock ReferenceRepository ──

type mockReferenceRepo struct {
	references map[string]*model.Reference
}

func newMockReferenceRepo() *mockReferenceRepo {
	return &mockReferenceRepo{references: make(map[string]*model.Reference)}
}

func (m *mockReferenceRepo) Create(_ context.Context, ref *model.Reference) error {
	if ref.ReferenceID == "" {
		ref.ReferenceID = "ref-" + ref.Code
	}
	m.references[ref.ReferenceID] = ref
	return nil
}

func (m *mockReferenceRepo) GetByID(_ context.Context, id string) (*model.Reference, error) {
	if ref, ok := m.references[id]; ok {
		return ref, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetByCode(_ context.Context, code string) (*model.Reference, error) {
	for _, ref := range m.references {
		if ref.Code == code {
			return ref, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) List(_ context.Context, includeInactive bool) ([]model.Reference, error) {
	var result []model.Reference
	for _, ref := range m.references {
		if !includeInactive && !ref.IsActive {
			continue
		}
		result = append(result, *ref)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockReferenceRepo) Update(_ context.Context, ref *model.Reference) error {
	if _, ok := m.references[ref.ReferenceID]; !ok {
		return gorm.ErrRecordNotFound
	}
	ref.Version++
	m.references[ref.ReferenceID] = ref
	return nil
}

func (m *mockReferenceRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.references, id)
	return nil
}

// ── Mock DeliveryDateRepository ──

// mockDeliveryDateRepo 模拟 upsert 语义的内存实现
// failUpsert 为 true 时整批失败且不写入任何行（模拟事务回滚）
type mockDeliveryDateRepo struct {
	dates       map[string]*model.DeliveryDate
	failUpsert  bool
	upsertCalls int
}

func newMockDeliveryDateRepo() *mockDeliveryDateRepo {
	return &mockDeliveryDateRepo{dates: make(map[string]*model.DeliveryDate)}
}

func (m *mockDeliveryDateRepo) UpsertAll(_ context.Context, dates []model.DeliveryDate) error {
	if len(dates) == 0 {
		return nil
	}
	m.upsertCalls++
	if m.failUpsert {
		return fmt.Errorf("mock: 存储不可用")
	}
	for i := range dates {
		d := dates[i]
		m.dates[d.DeliveryDateID] = &d
	}
	return nil
}

func (m *mockDeliveryDateRepo) GetByID(_ context.Context, id string) (*model.DeliveryDate, error) {
	if d, ok := m.dates[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeliveryDateRepo) ListWithFilters(_ context.Context, filters *repository.DeliveryDateListFilters, offset, limit int) ([]model.DeliveryDate, int64, error) {
	var all []model.DeliveryDate
	for _, d := range m.dates {
		if filters != nil {
			if filters.ConfeccionistaID != "" && d.ConfeccionistaID != filters.ConfeccionistaID {
				continue
			}
			if filters.ReferenceID != "" && d.ReferenceID != filters.ReferenceID {
				continue
			}
			if filters.From != nil && d.ExpectedDate.Before(*filters.From) {
				continue
			}
			if filters.To != nil && d.ExpectedDate.After(*filters.To) {
				continue
			}
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExpectedDate.Before(all[j].ExpectedDate) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockDeliveryDateRepo) ListByExpectedRange(_ context.Context, from, to time.Time) ([]model.DeliveryDate, error) {
	var result []model.DeliveryDate
	for _, d := range m.dates {
		if d.ExpectedDate.Before(from) || d.ExpectedDate.After(to) {
			continue
		}
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ExpectedDate.Before(result[j].ExpectedDate) })
	return result, nil
}

func (m *mockDeliveryDateRepo) Update(_ context.Context, d *model.DeliveryDate) error {
	if _, ok := m.dates[d.DeliveryDateID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.dates[d.DeliveryDateID] = d
	return nil
}

func (m *mockDeliveryDateRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.dates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.dates, id)
	return nil
}

func (m *mockDeliveryDateRepo) CountPendingByConfeccionista(_ context.Context, confeccionistaID string) (int64, error) {
	var count int64
	for _, d := range m.dates {
		if d.ConfeccionistaID == confeccionistaID && d.DeliveredDate == nil {
			count++
		}
	}
	return count, nil
}

// ── Mock Cache ──

// mockCache 内存缓存，记录失效调用供断言
// invalidateAsync 在 goroutine 中调用失效，所有方法都要加锁
type mockCache struct {
	mu          sync.Mutex
	store       map[string][]byte
	invalidated []string
	failGet     bool
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetCached(_ context.Context, entity, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("mock: 缓存不可用")
	}
	if v, ok := m.store[entity+":"+key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *mockCache) SetCached(_ context.Context, entity, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[entity+":"+key] = value
	return nil
}

func (m *mockCache) InvalidateEntity(_ context.Context, entity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, entity)
	for k := range m.store {
		delete(m.store, k)
	}
	return nil
}

// invalidations 返回已记录的失效实体快照
func (m *mockCache) invalidations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.invalidated))
	copy(out, m.invalidated)
	return out
}

// waitForInvalidation 等待异步失效到达，超时返回 false
func (m *mockCache) waitForInvalidation(entity string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, e := range m.invalidations() {
			if e == entity {
				return true
			}
		}
		time.Sleep(2 * time.Millisecond)
	}
	return false
}

// newTestRepository 组装全 mock 的 Repository 聚合
func newTestRepository() (*repository.Repository, *mockConfeccionistaRepo, *mockReferenceRepo, *mockDeliveryDateRepo) {
	confRepo := newMockConfeccionistaRepo()
	refRepo := newMockReferenceRepo()
	dateRepo := newMockDeliveryDateRepo()
	repo := &repository.Repository{
		Confeccionista: confRepo,
		Reference:      refRepo,
		DeliveryDate:   dateRepo,
	}
	return repo, confRepo, refRepo, dateRepo
}

// [自证通过] internal/service/mock_repos_test.go
