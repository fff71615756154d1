package batch

import "testing"

func qty(v float64) *float64 { return &v }

func validRecord() Record {
	return Record{
		Intent:           WriteIntent{Kind: IntentCreate},
		ConfeccionistaID: "conf-001",
		ReferenceID:      "REF-1001",
		Quantity:         qty(120),
		SendDate:         "2024-03-01",
		ExpectedDate:     "2024-03-15",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	r := validRecord()
	errs := Validate(&r)
	if len(errs) != 0 {
		t.Fatalf("合法记录不应有错误，实际: %v", errs)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	r := validRecord()
	r.ConfeccionistaID = "   " // 仅空白视为空
	r.ReferenceID = ""
	errs := Validate(&r)
	if _, ok := errs["confeccionistaId"]; !ok {
		t.Error("期望 confeccionistaId 报必填错误")
	}
	if _, ok := errs["referenceId"]; !ok {
		t.Error("期望 referenceId 报必填错误")
	}
}

func TestValidate_Quantity(t *testing.T) {
	cases := []struct {
		name    string
		q       *float64
		wantErr bool
	}{
		{"缺失", nil, true},
		{"为零", qty(0), true},
		{"负数", qty(-5), true},
		{"小数", qty(3.5), true},
		{"超出上限", qty(1e19), true},
		{"上限边界", qty(2147483647), false},
		{"正整数", qty(80), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			r.Quantity = tc.q
			errs := Validate(&r)
			_, got := errs["quantity"]
			if got != tc.wantErr {
				t.Errorf("quantity=%v: 期望报错=%v，实际=%v", tc.q, tc.wantErr, got)
			}
		})
	}
}

func TestValidate_DateFormat(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"合法日期", "2024-02-29", false}, // 2024 是闰年
		{"格式错误-斜杠", "2024/03/01", true},
		{"格式错误-缺位", "2024-3-1", true},
		{"日历非法", "2024-02-30", true},
		{"月份非法", "2024-13-01", true},
		{"为空", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			r.SendDate = tc.date
			errs := Validate(&r)
			_, got := errs["sendDate"]
			if got != tc.wantErr {
				t.Errorf("sendDate=%q: 期望报错=%v，实际=%v (%v)", tc.date, tc.wantErr, got, errs)
			}
		})
	}
}

func TestValidate_OptionalDeliveryDate(t *testing.T) {
	r := validRecord()
	r.DeliveredDate = "" // 可选字段缺失不报错
	if errs := Validate(&r); len(errs) != 0 {
		t.Errorf("deliveryDate 缺失不应报错: %v", errs)
	}

	r.DeliveredDate = "2024-02-30" // 存在则必须合法
	errs := Validate(&r)
	if _, ok := errs["deliveryDate"]; !ok {
		t.Error("期望 deliveryDate 报日历非法错误")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	// 所有规则都执行、所有违规一次收齐，不短路
	r := Record{SendDate: "bad", ExpectedDate: ""}
	errs := Validate(&r)
	for _, f := range []string{"confeccionistaId", "referenceId", "quantity", "sendDate", "expectedDate"} {
		if _, ok := errs[f]; !ok {
			t.Errorf("期望字段 %s 在同一轮校验中报错，实际错误集: %v", f, errs)
		}
	}
}

func TestIntentFromWireID(t *testing.T) {
	if got := IntentFromWireID(""); got.Kind != IntentCreate {
		t.Error("空 id 应推导为新建意图")
	}
	if got := IntentFromWireID("temp_123"); got.Kind != IntentCreate {
		t.Error("temp_ 前缀 id 应推导为新建意图")
	}
	got := IntentFromWireID("a1b2c3")
	if got.Kind != IntentUpdate || got.ID != "a1b2c3" {
		t.Errorf("真实 id 应推导为更新意图并携带身份，实际: %+v", got)
	}
}
