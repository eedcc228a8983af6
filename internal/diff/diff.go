// Package diff 计算记录元数据之间的结构化差异，并把差异整理成请求时间线里的
// 系统评论：映射、清洗、跨多次保存合并、渲染 HTML，以及随评论存储的可回放序列化。
package diff

import (
	"sort"
	"strconv"

	"rdm/curations/common/utils"

	"github.com/bytedance/sonic"
)

// 差异操作类型
const (
	OpAdd    = "add"
	OpChange = "change"
	OpRemove = "remove"
)

// Pair 新增或删除条目中的字段与取值，列表场景下 Field 为下标
type Pair struct {
	Field any `json:"field"`
	Value any `json:"value"`
}

// Entry 一条原始差异。add/remove 的载荷在 Pairs，change 的载荷在 Old/New。
// Key 为点分路径，同层的新增和删除归并在父级路径下。
type Entry struct {
	Op    string `json:"op"`
	Key   string `json:"key"`
	Pairs []Pair `json:"pairs,omitempty"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Compute 比较两份元数据。嵌套 map 递归展开为点分键，列表按下标比较，
// 同层按键名排序输出，变更在前，之后是归并的新增和删除。
func Compute(old, updated map[string]any) []Entry {
	var entries []Entry
	diffMaps("", old, updated, &entries)
	return entries
}

func diffMaps(path string, old, updated map[string]any, out *[]Entry) {
	keys := utils.SliceUnique(append(utils.MapKeys(old), utils.MapKeys(updated)...))
	sort.Strings(keys)

	var added, removed []Pair
	for _, k := range keys {
		ov, inOld := old[k]
		nv, inNew := updated[k]
		switch {
		case inOld && inNew:
			diffValues(joinKey(path, k), ov, nv, out)
		case inNew:
			added = append(added, Pair{Field: k, Value: nv})
		default:
			removed = append(removed, Pair{Field: k, Value: ov})
		}
	}
	if len(added) > 0 {
		*out = append(*out, Entry{Op: OpAdd, Key: path, Pairs: added})
	}
	if len(removed) > 0 {
		*out = append(*out, Entry{Op: OpRemove, Key: path, Pairs: removed})
	}
}

func diffValues(path string, ov, nv any, out *[]Entry) {
	om, oIsMap := asMap(ov)
	nm, nIsMap := asMap(nv)
	if oIsMap && nIsMap {
		diffMaps(path, om, nm, out)
		return
	}

	ol, oIsList := asList(ov)
	nl, nIsList := asList(nv)
	if oIsList && nIsList {
		diffLists(path, ol, nl, out)
		return
	}

	if !valueEqual(ov, nv) {
		*out = append(*out, Entry{Op: OpChange, Key: path, Old: ov, New: nv})
	}
}

func diffLists(path string, old, updated []any, out *[]Entry) {
	common := len(old)
	if len(updated) < common {
		common = len(updated)
	}
	for i := 0; i < common; i++ {
		diffValues(joinKey(path, strconv.Itoa(i)), old[i], updated[i], out)
	}

	var added, removed []Pair
	for i := common; i < len(updated); i++ {
		added = append(added, Pair{Field: i, Value: updated[i]})
	}
	for i := common; i < len(old); i++ {
		removed = append(removed, Pair{Field: i, Value: old[i]})
	}
	if len(added) > 0 {
		*out = append(*out, Entry{Op: OpAdd, Key: path, Pairs: added})
	}
	if len(removed) > 0 {
		*out = append(*out, Entry{Op: OpRemove, Key: path, Pairs: removed})
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	default:
		return nil, false
	}
}

// canonJSON 与标准库兼容的序列化配置，map 按键排序，保证对比和存储稳定
var canonJSON = sonic.ConfigStd

func canonString(v any) (string, error) {
	return canonJSON.MarshalToString(v)
}

// valueEqual 按规范化 JSON 比较取值，避免数值类型差异造成误报
func valueEqual(a, b any) bool {
	sa, errA := canonString(a)
	sb, errB := canonString(b)
	if errA != nil || errB != nil {
		return false
	}
	return sa == sb
}
