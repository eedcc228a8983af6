package diff

import (
	"strings"
	"testing"
)

func TestElementBaseContentObjectRoundTrip(t *testing.T) {
	expected := Entry{Op: OpChange, Key: "test_key", Old: "old", New: "new"}

	obj, err := NewElement(expected).BaseContentObject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var actual Entry
	if err := canonJSON.UnmarshalFromString(obj, &actual); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valueEqual(actual, expected) {
		t.Errorf("期望 %+v, 实际 %+v", expected, actual)
	}
}

func TestElementValidateAndCleanup(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"change 合法", Entry{Op: OpChange, Key: "k", Old: "a", New: "b"}, true},
		{"单字段新增合法", Entry{Op: OpAdd, Key: "k", Pairs: []Pair{{Field: "f", Value: 1}}}, true},
		{"多字段新增丢弃", Entry{Op: OpAdd, Key: "k", Pairs: []Pair{{Field: "f", Value: 1}, {Field: "g", Value: 2}}}, false},
		{"单字段删除合法", Entry{Op: OpRemove, Key: "k", Pairs: []Pair{{Field: "f", Value: 1}}}, true},
		{"空载荷删除丢弃", Entry{Op: OpRemove, Key: "k"}, false},
		{"未知操作丢弃", Entry{Op: "rename", Key: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewElement(tt.entry).ValidateAndCleanup(); got != tt.want {
				t.Errorf("ValidateAndCleanup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementCompareRevert(t *testing.T) {
	// 前一份评论里新增的字段在本次更新中被删除, 双方抵消
	this := NewElement(Entry{Op: OpRemove, Key: "metadata", Pairs: []Pair{{Field: "subtitle", Value: "S"}}})
	ref := NewElement(Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "subtitle", Value: "S"}}})

	if got := this.Compare(ref); got != CompareDrop {
		t.Errorf("期望 CompareDrop, 实际 %v", got)
	}
}

func TestElementCompareChangeChaining(t *testing.T) {
	this := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "B", New: "C"})
	ref := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "A", New: "B"})

	if got := this.Compare(ref); got != CompareKeep {
		t.Fatalf("期望 CompareKeep, 实际 %v", got)
	}
	// 旧值取自基准, 展示 A -> C 的完整变化
	if this.Entry().Old != "A" || this.Entry().New != "C" {
		t.Errorf("串联结果不符: %+v", this.Entry())
	}
}

func TestElementCompareBackToOriginal(t *testing.T) {
	this := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "B", New: "A"})
	ref := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "A", New: "B"})

	if got := this.Compare(ref); got != CompareDrop {
		t.Errorf("改回原值应抵消, 实际 %v", got)
	}
}

func TestElementCompareUnrelatedKeys(t *testing.T) {
	this := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "A", New: "B"})
	ref := NewElement(Entry{Op: OpChange, Key: "metadata.subtitle", Old: "X", New: "Y"})

	if got := this.Compare(ref); got != CompareUnrelated {
		t.Errorf("期望 CompareUnrelated, 实际 %v", got)
	}
}

func TestElementCompareSameOpKept(t *testing.T) {
	this := NewElement(Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "subtitle", Value: "S"}}})
	ref := NewElement(Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "subtitle", Value: "S"}}})

	if got := this.Compare(ref); got != CompareKeep {
		t.Errorf("同操作同载荷应保留当前差异, 实际 %v", got)
	}
}

func TestElementHTML(t *testing.T) {
	changed := NewElement(Entry{Op: OpChange, Key: "metadata.title", Old: "A", New: "B"}).HTML()
	if !strings.Contains(changed, `"metadata title"`) || !strings.Contains(changed, `"old": "A"`) || !strings.Contains(changed, `"new": "B"`) {
		t.Errorf("change 渲染不符: %s", changed)
	}

	added := NewElement(Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "subtitle", Value: "S"}}}).HTML()
	if !strings.Contains(added, `"metadata"`) || !strings.Contains(added, "subtitle") {
		t.Errorf("add 渲染不符: %s", added)
	}
}

func TestDescriptionElementMatches(t *testing.T) {
	el := &DescriptionElement{}

	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"变更描述字段", Entry{Op: OpChange, Key: "metadata.description", Old: "a", New: "b"}, true},
		{"父级下新增描述", Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "description", Value: "d"}}}, true},
		{"父级下删除描述", Entry{Op: OpRemove, Key: "metadata", Pairs: []Pair{{Field: "description", Value: "d"}}}, true},
		{"其它字段不命中", Entry{Op: OpChange, Key: "metadata.title", Old: "a", New: "b"}, false},
		{"其它字段新增不命中", Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: "title", Value: "t"}}}, false},
		{"下标字段不命中", Entry{Op: OpAdd, Key: "metadata", Pairs: []Pair{{Field: 0, Value: "x"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := el.Matches(tt.entry); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestDescriptionElementCleanupStripsTags(t *testing.T) {
	el := NewDescriptionElement(Entry{
		Op:  OpChange,
		Key: DescriptionKey,
		Old: "<p>old text</p>",
		New: "<div><b>new</b> text </div>",
	})
	if !el.ValidateAndCleanup() {
		t.Fatal("期望清洗成功")
	}
	if el.Entry().Old != "old text" || el.Entry().New != "new text" {
		t.Errorf("清洗结果不符: %+v", el.Entry())
	}
}

func TestDescriptionElementCleanupNonString(t *testing.T) {
	el := NewDescriptionElement(Entry{Op: OpChange, Key: DescriptionKey, Old: 1, New: "b"})
	if el.ValidateAndCleanup() {
		t.Error("非字符串取值应清洗失败")
	}
}
