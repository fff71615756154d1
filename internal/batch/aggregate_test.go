package batch

import (
	"errors"
	"testing"
)

func partitionOf(valid, rejected int) Partition {
	var p Partition
	for i := 0; i < valid; i++ {
		p.Valid = append(p.Valid, ValidRow{Index: i, Record: keyedRecord("c", "r", "2024-01-01")})
	}
	for i := 0; i < rejected; i++ {
		p.Rejected = append(p.Rejected, RejectedRow{
			Index:  valid + i,
			Errors: FieldErrors{"quantity": "数量不能为空"},
		})
	}
	return p
}

func TestAggregate_AllSaved(t *testing.T) {
	p := partitionOf(3, 0)
	out := Aggregate(p, CommitResult{SavedIDs: []string{"a", "b", "c"}}, 3)

	if !out.Success {
		t.Error("无失败行时 Success 应为 true")
	}
	if out.Summary.Total != 3 || out.Summary.Saved != 3 || out.Summary.Failed != 0 {
		t.Errorf("汇总错误: %+v", out.Summary)
	}
	if len(out.SavedIDs) != 3 {
		t.Errorf("期望 3 个已保存 id，实际 %d", len(out.SavedIDs))
	}
}

func TestAggregate_MixedRejected(t *testing.T) {
	p := partitionOf(2, 1)
	out := Aggregate(p, CommitResult{SavedIDs: []string{"a", "b"}}, 3)

	if out.Success {
		t.Error("存在被拒行时 Success 应为 false")
	}
	if out.Summary.Saved != 2 || out.Summary.Failed != 1 {
		t.Errorf("汇总错误: %+v", out.Summary)
	}
	if out.Summary.Saved+out.Summary.Failed != out.Summary.Total {
		t.Error("不变量 saved+failed==total 被破坏")
	}
}

func TestAggregate_StorageFailure(t *testing.T) {
	// 提交失败后，每一个原 valid 行都必须重新浮出为失败条目，无行失踪
	p := partitionOf(5, 0)
	out := Aggregate(p, CommitResult{Err: errors.New("connection reset")}, 5)

	if !out.StorageFailed {
		t.Error("期望 StorageFailed=true")
	}
	if len(out.SavedIDs) != 0 {
		t.Errorf("存储失败时 SavedIDs 必须为空，实际: %v", out.SavedIDs)
	}
	if out.Summary.Saved != 0 || out.Summary.Failed != 5 {
		t.Errorf("期望 saved=0/failed=5，实际: %+v", out.Summary)
	}
	seen := make(map[int]bool)
	for _, e := range out.Errors {
		if seen[e.Index] {
			t.Errorf("账本下标 %d 重复", e.Index)
		}
		seen[e.Index] = true
		if _, ok := e.Errors["storage"]; !ok {
			t.Errorf("行 %d 应携带存储错误条目，实际: %v", e.Index, e.Errors)
		}
	}
	for i := 0; i < 5; i++ {
		if !seen[i] {
			t.Errorf("行 %d 未在账本中出现", i)
		}
	}
}

func TestAggregate_StorageFailureWithRejected(t *testing.T) {
	p := partitionOf(2, 2)
	out := Aggregate(p, CommitResult{Err: errors.New("deadlock")}, 4)

	if out.Summary.Failed != 4 || out.Summary.Saved != 0 {
		t.Errorf("期望全部 4 行失败，实际: %+v", out.Summary)
	}
	// 账本按下标升序
	for i := 1; i < len(out.Errors); i++ {
		if out.Errors[i-1].Index >= out.Errors[i].Index {
			t.Errorf("账本未按下标升序: %d >= %d", out.Errors[i-1].Index, out.Errors[i].Index)
		}
	}
}

func TestAggregate_InvariantsHoldAcrossShapes(t *testing.T) {
	shapes := []struct {
		valid, rejected int
		fail            bool
	}{
		{0, 3, false},
		{3, 0, false},
		{2, 2, false},
		{4, 1, true},
	}
	for _, s := range shapes {
		total := s.valid + s.rejected
		commit := CommitResult{}
		if s.fail {
			commit.Err = errors.New("boom")
		} else {
			for i := 0; i < s.valid; i++ {
				commit.SavedIDs = append(commit.SavedIDs, "id")
			}
		}
		out := Aggregate(partitionOf(s.valid, s.rejected), commit, total)
		if out.Summary.Total != total {
			t.Errorf("%+v: total 不等于输入长度", s)
		}
		if out.Summary.Saved+out.Summary.Failed != out.Summary.Total {
			t.Errorf("%+v: saved+failed != total", s)
		}
		if len(out.SavedIDs) != out.Summary.Saved {
			t.Errorf("%+v: SavedIDs 数与 saved 计数不一致", s)
		}
	}
}
