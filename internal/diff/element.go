package diff

import (
	"fmt"
	"strings"
)

// CompareResult Compare 的三态结果
type CompareResult int

const (
	CompareUnrelated CompareResult = iota // 键不同，互不影响
	CompareKeep                          // 保留当前差异
	CompareDrop                          // 当前差异应被移除
)

// Element 差异包装器，不同类别的字段可定制匹配与清洗行为
type Element interface {
	Entry() Entry
	Matches(e Entry) bool
	ValidateAndCleanup() bool
	Compare(other Element) CompareResult
	HTML() string
	BaseContentObject() (string, error)
}

// Factory 差异包装器构造函数
type Factory func(Entry) Element

type baseElement struct {
	entry Entry
}

// NewElement 通用差异包装器
func NewElement(e Entry) Element {
	return &baseElement{entry: e}
}

func (el *baseElement) Entry() Entry {
	return el.entry
}

func (el *baseElement) Matches(Entry) bool {
	return true
}

// ValidateAndCleanup 只保留单字段的新增/删除与成对取值的变更
func (el *baseElement) ValidateAndCleanup() bool {
	switch el.entry.Op {
	case OpChange:
		return true
	case OpAdd, OpRemove:
		return len(el.entry.Pairs) == 1
	default:
		return false
	}
}

// Compare 以 other 为基准比较当前差异
// 同键反向操作且载荷一致视为改回，当前差异被抵消；两个 change 串联时旧值取自基准，
// 串联后回到原值的字段同样被抵消；其余情况保留当前差异。
func (el *baseElement) Compare(other Element) CompareResult {
	if other == nil {
		return CompareDrop
	}
	this := el.entry
	ref := other.Entry()

	if this.Key != ref.Key {
		return CompareUnrelated
	}

	if this.Op != ref.Op && this.Op != OpChange && ref.Op != OpChange && pairsEqual(this.Pairs, ref.Pairs) {
		return CompareDrop
	}

	if this.Op == OpChange && ref.Op == OpChange {
		if valueEqual(ref.Old, this.New) {
			return CompareDrop
		}
		el.entry.Old = ref.Old
		return CompareKeep
	}

	return CompareKeep
}

func (el *baseElement) HTML() string {
	spaced := strings.ReplaceAll(el.entry.Key, ".", " ")
	if el.entry.Op == OpChange {
		oldJSON, _ := canonString(el.entry.Old)
		newJSON, _ := canonString(el.entry.New)
		return fmt.Sprintf(`{%q: {"old": %s, "new": %s}}`, spaced, oldJSON, newJSON)
	}
	pairs, _ := canonString(el.entry.Pairs)
	return fmt.Sprintf(`{%q: %s}`, spaced, pairs)
}

func (el *baseElement) BaseContentObject() (string, error) {
	return canonString(el.entry)
}

func pairsEqual(a, b []Pair) bool {
	sa, errA := canonString(a)
	sb, errB := canonString(b)
	if errA != nil || errB != nil {
		return false
	}
	return sa == sb
}

// DescriptionKey 描述字段的点分键
const DescriptionKey = "metadata.description"

// DescriptionElement 描述字段差异包装器，取值在进入评论前去除 HTML 标签
type DescriptionElement struct {
	baseElement
}

// NewDescriptionElement 创建描述字段差异包装器
func NewDescriptionElement(e Entry) Element {
	return &DescriptionElement{baseElement{entry: e}}
}

// Matches 命中描述字段本身的变更，或父级路径下对描述字段的新增/删除
func (el *DescriptionElement) Matches(e Entry) bool {
	if e.Key == DescriptionKey {
		return true
	}
	if len(e.Pairs) == 1 {
		if field, ok := e.Pairs[0].Field.(string); ok {
			return e.Key+"."+field == DescriptionKey
		}
	}
	return false
}

// ValidateAndCleanup 清除取值中的 HTML 标签，清洗失败的差异不进入评论
func (el *DescriptionElement) ValidateAndCleanup() bool {
	switch {
	case el.entry.Op == OpChange:
		oldText, errOld := CleanupHTMLTags(el.entry.Old)
		newText, errNew := CleanupHTMLTags(el.entry.New)
		if errOld != nil || errNew != nil {
			return false
		}
		el.entry.Old = strings.TrimSpace(oldText)
		el.entry.New = strings.TrimSpace(newText)
		return true
	case len(el.entry.Pairs) == 1:
		text, err := CleanupHTMLTags(el.entry.Pairs[0].Value)
		if err != nil {
			return false
		}
		el.entry.Pairs[0].Value = strings.TrimSpace(text)
		return true
	default:
		// 其它形态先不放入评论，避免干扰后续差异合并
		return false
	}
}
