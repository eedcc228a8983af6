package diff

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestComputeChange(t *testing.T) {
	old := map[string]any{"metadata": map[string]any{"title": "A"}}
	updated := map[string]any{"metadata": map[string]any{"title": "B"}}

	entries := Compute(old, updated)
	want := []Entry{{Op: OpChange, Key: "metadata.title", Old: "A", New: "B"}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Compute = %+v, want %+v", entries, want)
	}
}

func TestComputeAddRemoveGrouped(t *testing.T) {
	old := map[string]any{"metadata": map[string]any{"title": "A", "subtitle": "S"}}
	updated := map[string]any{"metadata": map[string]any{"title": "A", "version": "v1", "year": 2024}}

	entries := Compute(old, updated)
	if len(entries) != 2 {
		t.Fatalf("期望 2 条差异, 实际 %d: %+v", len(entries), entries)
	}

	add := entries[0]
	if add.Op != OpAdd || add.Key != "metadata" || len(add.Pairs) != 2 {
		t.Errorf("新增条目不符: %+v", add)
	}
	remove := entries[1]
	if remove.Op != OpRemove || remove.Key != "metadata" || len(remove.Pairs) != 1 {
		t.Errorf("删除条目不符: %+v", remove)
	}
	if remove.Pairs[0].Field != "subtitle" || remove.Pairs[0].Value != "S" {
		t.Errorf("删除载荷不符: %+v", remove.Pairs[0])
	}
}

func TestComputeRootLevel(t *testing.T) {
	entries := Compute(map[string]any{}, map[string]any{"title": "T"})
	want := []Entry{{Op: OpAdd, Key: "", Pairs: []Pair{{Field: "title", Value: "T"}}}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Compute = %+v, want %+v", entries, want)
	}
}

func TestComputeLists(t *testing.T) {
	old := map[string]any{"authors": []any{"alice", "bob"}}
	updated := map[string]any{"authors": []any{"alice", "carol", "dave"}}

	entries := Compute(old, updated)
	if len(entries) != 2 {
		t.Fatalf("期望 2 条差异, 实际 %d: %+v", len(entries), entries)
	}
	if entries[0].Op != OpChange || entries[0].Key != "authors.1" || entries[0].New != "carol" {
		t.Errorf("下标变更不符: %+v", entries[0])
	}
	if entries[1].Op != OpAdd || entries[1].Key != "authors" || entries[1].Pairs[0].Field != 2 {
		t.Errorf("列表追加不符: %+v", entries[1])
	}
}

func TestComputeNestedRecursion(t *testing.T) {
	old := map[string]any{
		"metadata": map[string]any{
			"creators": []any{
				map[string]any{"name": "alice", "affiliation": "tu"},
			},
		},
	}
	updated := map[string]any{
		"metadata": map[string]any{
			"creators": []any{
				map[string]any{"name": "alice", "affiliation": "uni"},
			},
		},
	}

	entries := Compute(old, updated)
	want := []Entry{{Op: OpChange, Key: "metadata.creators.0.affiliation", Old: "tu", New: "uni"}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Compute = %+v, want %+v", entries, want)
	}
}

func TestComputeTypeMismatchIsChange(t *testing.T) {
	old := map[string]any{"field": map[string]any{"a": 1}}
	updated := map[string]any{"field": "scalar"}

	entries := Compute(old, updated)
	if len(entries) != 1 || entries[0].Op != OpChange || entries[0].Key != "field" {
		t.Errorf("类型变化应产出 change: %+v", entries)
	}
}

// metadataGen 生成随机嵌套元数据
func metadataGen() *rapid.Generator[map[string]any] {
	scalar := rapid.OneOf(
		rapid.StringMatching(`[a-z]{1,8}`).AsAny(),
		rapid.IntRange(0, 100).AsAny(),
		rapid.Bool().AsAny(),
	)
	return rapid.MapOfN(
		rapid.StringMatching(`[a-z]{1,6}`),
		rapid.OneOf(
			scalar,
			rapid.SliceOfN(scalar, 0, 3).AsAny(),
			rapid.MapOfN(rapid.StringMatching(`[a-z]{1,6}`), scalar, 0, 3).AsAny(),
		),
		0, 5,
	)
}

// 自反性: 任何元数据与自身比较不产生差异
func TestComputeIdenticalIsEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := metadataGen().Draw(t, "m")
		if entries := Compute(m, m); len(entries) != 0 {
			t.Errorf("期望空差异, 实际 %+v", entries)
		}
	})
}

// 对称性: 交换比较方向后 add 与 remove 互换, change 的新旧值互换
func TestComputeSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := metadataGen().Draw(t, "a")
		b := metadataGen().Draw(t, "b")

		forward := Compute(a, b)
		backward := Compute(b, a)
		if len(forward) != len(backward) {
			t.Fatalf("差异条数不对称: %d vs %d", len(forward), len(backward))
		}

		count := func(entries []Entry, op string) int {
			n := 0
			for _, e := range entries {
				if e.Op == op {
					n++
				}
			}
			return n
		}
		if count(forward, OpAdd) != count(backward, OpRemove) {
			t.Errorf("add/remove 不对称")
		}
		if count(forward, OpChange) != count(backward, OpChange) {
			t.Errorf("change 条数不对称")
		}
	})
}
