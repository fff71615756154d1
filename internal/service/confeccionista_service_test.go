package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/JhonaMR/Prendas-sub005/config"
	"github.com/JhonaMR/Prendas-sub005/internal/dto"
	"github.com/JhonaMR/Prendas-sub005/internal/model"
)

// ── 测试辅助 ──

func setupTestConfeccionistaService() (ConfeccionistaService, *mockConfeccionistaRepo, *mockDeliveryDateRepo) {
	repo, confRepo, _, dateRepo := newTestRepository()
	cacheCfg := &config.CacheConfig{Enabled: true, TTL: time.Minute}
	svc := NewConfeccionistaService(repo, newMockCache(), cacheCfg, zap.NewNop())
	return svc, confRepo, dateRepo
}

// ── Create 测试 ──

func TestConfeccionistaService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestConfeccionistaService()

	req := &dto.CreateConfeccionistaRequest{
		Name: "Taller La Esperanza",
		City: "Medellín",
	}

	result, err := svc.Create(context.Background(), req, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Taller La Esperanza" {
		t.Errorf("期望Name=Taller La Esperanza，实际=%s", result.Name)
	}
	if !result.IsActive {
		t.Error("新建加工户应默认启用")
	}
}

func TestConfeccionistaService_Create_NameExists(t *testing.T) {
	svc, confRepo, _ := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001",
		Name:             "Taller La Esperanza",
		IsActive:         true,
	}

	req := &dto.CreateConfeccionistaRequest{Name: "Taller La Esperanza"}
	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrConfeccionistaNameExists) {
		t.Errorf("期望 ErrConfeccionistaNameExists，实际: %v", err)
	}
}

// ── GetByID / List 测试 ──

func TestConfeccionistaService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestConfeccionistaService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrConfeccionistaNotFound) {
		t.Errorf("期望 ErrConfeccionistaNotFound，实际: %v", err)
	}
}

func TestConfeccionistaService_List_ActiveOnly(t *testing.T) {
	svc, confRepo, _ := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001", Name: "Activo", IsActive: true,
	}
	confRepo.confeccionistas["conf-002"] = &model.Confeccionista{
		ConfeccionistaID: "conf-002", Name: "Inactivo", IsActive: false,
	}

	list, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Activo" {
		t.Errorf("期望仅返回启用项，实际%v", list)
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("期望返回全部2项，实际%d", len(all))
	}
}

// ── Update 测试 ──

func TestConfeccionistaService_Update_Success(t *testing.T) {
	svc, confRepo, _ := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001", Name: "Taller Viejo", IsActive: true,
	}

	newName := "Taller Nuevo"
	result, err := svc.Update(context.Background(), "conf-001", &dto.UpdateConfeccionistaRequest{
		Name: &newName,
	}, "user-002")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Taller Nuevo" {
		t.Errorf("期望Name=Taller Nuevo，实际=%s", result.Name)
	}
}

func TestConfeccionistaService_Update_NameTakenByOther(t *testing.T) {
	svc, confRepo, _ := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001", Name: "Taller A", IsActive: true,
	}
	confRepo.confeccionistas["conf-002"] = &model.Confeccionista{
		ConfeccionistaID: "conf-002", Name: "Taller B", IsActive: true,
	}

	taken := "Taller B"
	_, err := svc.Update(context.Background(), "conf-001", &dto.UpdateConfeccionistaRequest{
		Name: &taken,
	}, "user-001")
	if !errors.Is(err, ErrConfeccionistaNameExists) {
		t.Errorf("期望 ErrConfeccionistaNameExists，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestConfeccionistaService_Delete_Success(t *testing.T) {
	svc, confRepo, _ := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001", Name: "Taller A", IsActive: true,
	}

	if err := svc.Delete(context.Background(), "conf-001", "user-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := confRepo.confeccionistas["conf-001"]; ok {
		t.Error("删除后不应能查到该加工户")
	}
}

func TestConfeccionistaService_Delete_HasPendingDeliveries(t *testing.T) {
	svc, confRepo, dateRepo := setupTestConfeccionistaService()
	confRepo.confeccionistas["conf-001"] = &model.Confeccionista{
		ConfeccionistaID: "conf-001", Name: "Taller A", IsActive: true,
	}
	dateRepo.dates["dd-001"] = &model.DeliveryDate{
		DeliveryDateID:   "dd-001",
		ConfeccionistaID: "conf-001",
		ReferenceID:      "ref-001",
		Quantity:         50,
	}

	err := svc.Delete(context.Background(), "conf-001", "user-001")
	if !errors.Is(err, ErrConfeccionistaHasPending) {
		t.Errorf("期望 ErrConfeccionistaHasPending，实际: %v", err)
	}
}

