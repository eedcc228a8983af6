package service

import (
	"testing"

	"rdm/curations/common/utils"

	"pgregory.net/rapid"
)

func uintSliceEqual(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFanOutTargets(t *testing.T) {
	curators := []uint{10, 11}
	const owner uint = 42

	tests := []struct {
		action string
		want   []uint
	}{
		{ActionSubmit, []uint{10, 11}},
		{ActionResubmit, []uint{10, 11}},
		{ActionReview, []uint{42}},
		{ActionCritique, []uint{42}},
		{ActionAccept, []uint{42}},
		{ActionDecline, []uint{42}},
		{ActionCancel, []uint{10, 11, 42}},
		{ActionExpire, []uint{10, 11, 42}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got := fanOutTargets(tt.action, curators, owner)
			if !uintSliceEqual(got, tt.want) {
				t.Errorf("期望 %v, 实际 %v", tt.want, got)
			}
		})
	}

	if got := fanOutTargets("no-such-action", curators, owner); got != nil {
		t.Errorf("未知动作期望无通知对象, 实际 %v", got)
	}
}

// 所有者兼任审核方时 cancel/expire 不重复通知
func TestFanOutTargetsOwnerIsCurator(t *testing.T) {
	got := fanOutTargets(ActionCancel, []uint{10, 42}, 42)
	if !uintSliceEqual(got, []uint{10, 42}) {
		t.Errorf("期望 [10 42], 实际 %v", got)
	}
}

// 角色成员查出来的ID本身不重复，在这个前提下任何动作都不会重复通知同一人
func TestFanOutTargetsNoDuplicates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		curators := utils.SliceUnique(rapid.SliceOfN(rapid.UintRange(1, 20), 0, 8).Draw(t, "curators"))
		owner := rapid.UintRange(1, 20).Draw(t, "owner")

		for _, action := range Actions() {
			targets := fanOutTargets(action, curators, owner)
			seen := make(map[uint]bool, len(targets))
			for _, id := range targets {
				if seen[id] {
					t.Fatalf("%s 重复通知 %d: %v", action, id, targets)
				}
				seen[id] = true
			}
		}
	})
}
