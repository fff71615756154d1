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

func setupTestReferenceService() (ReferenceService, *mockReferenceRepo) {
	repo, _, refRepo, _ := newTestRepository()
	cacheCfg := &config.CacheConfig{Enabled: true, TTL: time.Minute}
	svc := NewReferenceService(repo, newMockCache(), cacheCfg, zap.NewNop())
	return svc, refRepo
}

func TestReferenceService_Create_Success(t *testing.T) {
	svc, _ := setupTestReferenceService()

	req := &dto.CreateReferenceRequest{
		Code:        "REF-2024-018",
		Description: "Camiseta manga corta",
		Sizes:       []string{"S", "M", "L"},
	}

	result, err := svc.Create(context.Background(), req, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Code != "REF-2024-018" {
		t.Errorf("期望Code=REF-2024-018，实际=%s", result.Code)
	}
	if len(result.Sizes) != 3 {
		t.Errorf("期望3个尺码，实际%d", len(result.Sizes))
	}
}

func TestReferenceService_Create_CodeExists(t *testing.T) {
	svc, refRepo := setupTestReferenceService()
	refRepo.references["ref-001"] = &model.Reference{
		ReferenceID: "ref-001", Code: "REF-2024-018", IsActive: true,
	}

	req := &dto.CreateReferenceRequest{Code: "REF-2024-018"}
	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrReferenceCodeExists) {
		t.Errorf("期望 ErrReferenceCodeExists，实际: %v", err)
	}
}

func TestReferenceService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestReferenceService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("期望 ErrReferenceNotFound，实际: %v", err)
	}
}

func TestReferenceService_Update_Deactivate(t *testing.T) {
	svc, refRepo := setupTestReferenceService()
	refRepo.references["ref-001"] = &model.Reference{
		ReferenceID: "ref-001", Code: "REF-2024-018", IsActive: true,
	}

	inactive := false
	result, err := svc.Update(context.Background(), "ref-001", &dto.UpdateReferenceRequest{
		IsActive: &inactive,
	}, "user-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("期望停用后 IsActive=false")
	}
}

func TestReferenceService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestReferenceService()

	err := svc.Delete(context.Background(), "nonexistent", "user-001")
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("期望 ErrReferenceNotFound，实际: %v", err)
	}
}
