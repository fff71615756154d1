package batch

import "strings"

// ── 批量对账管道的数据契约 ──
//
// 本包是纯函数层：不做任何 I/O，给定同一批次输入，输出完全确定。
// 事务提交与缓存失效由 service / repository 层编排。

// IntentKind 写意图类别
type IntentKind int

const (
	// IntentCreate 新建：提交时由协调器生成全新身份
	IntentCreate IntentKind = iota
	// IntentUpdate 更新：沿用调用方提供的既有身份做 upsert
	IntentUpdate
)

// WriteIntent 行的写意图
// 显式标签取代"看 id 是否带 temp_ 前缀"的字符串嗅探：
// wire 层的临时 ID 在进入管道前即折叠为 IntentCreate
type WriteIntent struct {
	Kind IntentKind
	ID   string // Kind==IntentUpdate 时为既有身份
}

// tempIDPrefix 前端为未落库行生成的临时 ID 前缀（wire 兼容）
const tempIDPrefix = "temp_"

// IntentFromWireID 从 wire 层 id 字段推导写意图
// 空串或 temp_ 前缀 ⇒ 新建；其余 ⇒ 按该身份更新
func IntentFromWireID(id string) WriteIntent {
	if id == "" || strings.HasPrefix(id, tempIDPrefix) {
		return WriteIntent{Kind: IntentCreate}
	}
	return WriteIntent{Kind: IntentUpdate, ID: id}
}

// Record 批次中的一行原始记录
// 日期字段保持 wire 字符串形态：校验通过前不解析，
// 自然键比较按字面值进行（不 trim、不折叠大小写）
type Record struct {
	RawID            string // wire 层 id 原文，仅用于账本回显
	Intent           WriteIntent
	ConfeccionistaID string
	ReferenceID      string
	Quantity         *float64 // nil ⇒ wire 层缺失
	SendDate         string
	ExpectedDate     string
	DeliveredDate    string // 可选
	Process          string // 可选
	Observation      string // 可选
}

// NaturalKey 批内去重用的业务自然键
// 非存储层唯一约束：同组合可经单条路径合法重复录入
type NaturalKey struct {
	ConfeccionistaID string
	ReferenceID      string
	SendDate         string
}

// Key 取该行的自然键（字面精确，不做归一化）
func (r *Record) Key() NaturalKey {
	return NaturalKey{
		ConfeccionistaID: r.ConfeccionistaID,
		ReferenceID:      r.ReferenceID,
		SendDate:         r.SendDate,
	}
}

// FieldErrors 字段名 → 错误消息
// 收集式语义：一行的所有违规一次全部暴露，不短路
type FieldErrors map[string]string

// OutcomeKind 行结局类别
type OutcomeKind int

const (
	// RowValid 行通过去重与字段校验，待提交
	RowValid OutcomeKind = iota
	// RowDuplicate 行与更早下标的行自然键相同
	RowDuplicate
	// RowInvalid 行存在字段违规
	RowInvalid
)

// RowOutcome 单行结局（带标签变体）
// 与输入行一一对应：映射是全量且保序的
type RowOutcome struct {
	Index      int
	Kind       OutcomeKind
	Record     Record
	FirstIndex int         // Kind==RowDuplicate 时为首次出现的下标
	Errors     FieldErrors // Kind==RowInvalid 时非空
}

// [自证通过] internal/batch/record.go
