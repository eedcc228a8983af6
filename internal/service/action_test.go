package service

import (
	"errors"
	"testing"

	"rdm/curations/internal/model"
)

var allStatuses = []string{
	model.RequestStatusCreated,
	model.RequestStatusSubmitted,
	model.RequestStatusReview,
	model.RequestStatusCritiqued,
	model.RequestStatusResubmitted,
	model.RequestStatusAccepted,
	model.RequestStatusDeclined,
	model.RequestStatusCancelled,
	model.RequestStatusExpired,
}

// 全量迁移矩阵，未列出的组合一律非法
var transitions = map[string]map[string]string{
	ActionSubmit: {
		model.RequestStatusCreated: model.RequestStatusSubmitted,
	},
	ActionReview: {
		model.RequestStatusSubmitted:   model.RequestStatusReview,
		model.RequestStatusResubmitted: model.RequestStatusReview,
	},
	ActionCritique: {
		model.RequestStatusReview: model.RequestStatusCritiqued,
	},
	ActionResubmit: {
		model.RequestStatusCritiqued: model.RequestStatusResubmitted,
		model.RequestStatusAccepted:  model.RequestStatusResubmitted,
		model.RequestStatusDeclined:  model.RequestStatusResubmitted,
		model.RequestStatusExpired:   model.RequestStatusResubmitted,
		model.RequestStatusCancelled: model.RequestStatusResubmitted,
	},
	ActionAccept: {
		model.RequestStatusReview:      model.RequestStatusAccepted,
		model.RequestStatusResubmitted: model.RequestStatusAccepted,
		model.RequestStatusSubmitted:   model.RequestStatusAccepted,
	},
	ActionDecline: {
		model.RequestStatusReview:      model.RequestStatusDeclined,
		model.RequestStatusResubmitted: model.RequestStatusDeclined,
		model.RequestStatusSubmitted:   model.RequestStatusDeclined,
	},
	ActionCancel: {
		model.RequestStatusSubmitted:   model.RequestStatusCancelled,
		model.RequestStatusReview:      model.RequestStatusCancelled,
		model.RequestStatusCritiqued:   model.RequestStatusCancelled,
		model.RequestStatusResubmitted: model.RequestStatusCancelled,
	},
	ActionExpire: {
		model.RequestStatusSubmitted:   model.RequestStatusExpired,
		model.RequestStatusReview:      model.RequestStatusExpired,
		model.RequestStatusCritiqued:   model.RequestStatusExpired,
		model.RequestStatusResubmitted: model.RequestStatusExpired,
	},
}

func TestNextStatusMatrix(t *testing.T) {
	for _, action := range Actions() {
		for _, from := range allStatuses {
			got, err := NextStatus(action, from)
			want, valid := transitions[action][from]

			if valid {
				if err != nil {
					t.Errorf("%s@%s: 期望迁移到 %s, 实际错误 %v", action, from, want, err)
					continue
				}
				if got != want {
					t.Errorf("%s@%s: 期望 %s, 实际 %s", action, from, want, got)
				}
			} else if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s@%s: 期望非法迁移, 实际 %q, %v", action, from, got, err)
			}
		}
	}
}

func TestNextStatusUnknownAction(t *testing.T) {
	if _, err := NextStatus("no-such-action", model.RequestStatusCreated); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("期望 ErrUnknownAction, 实际 %v", err)
	}
}

// 动作落点与开放集保持一致
func TestNextStatusOpenSet(t *testing.T) {
	openTargets := map[string]bool{
		ActionSubmit:   true,
		ActionReview:   true,
		ActionCritique: true,
		ActionResubmit: true,
		ActionAccept:   false,
		ActionDecline:  false,
		ActionCancel:   false,
		ActionExpire:   false,
	}

	for action, wantOpen := range openTargets {
		for from := range transitions[action] {
			to, err := NextStatus(action, from)
			if err != nil {
				t.Fatalf("%s@%s: unexpected error: %v", action, from, err)
			}
			if model.IsOpenStatus(to) != wantOpen {
				t.Errorf("%s 落点 %s 的开放态 = %v, 期望 %v", action, to, model.IsOpenStatus(to), wantOpen)
			}
		}
	}
}

func TestAllowedActors(t *testing.T) {
	tests := []struct {
		action string
		want   []ActorClass
	}{
		{ActionSubmit, []ActorClass{ActorOwner, ActorSystem}},
		{ActionReview, []ActorClass{ActorCurator}},
		{ActionCritique, []ActorClass{ActorCurator}},
		{ActionResubmit, []ActorClass{ActorOwner, ActorSystem}},
		{ActionAccept, []ActorClass{ActorCurator}},
		{ActionDecline, []ActorClass{ActorCurator}},
		{ActionCancel, []ActorClass{ActorOwner, ActorSystem}},
		{ActionExpire, []ActorClass{ActorSystem}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got, err := AllowedActors(tt.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("期望 %v, 实际 %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("期望 %v, 实际 %v", tt.want, got)
					break
				}
			}
		})
	}

	if _, err := AllowedActors("no-such-action"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("期望 ErrUnknownAction, 实际 %v", err)
	}
}

func TestIsAction(t *testing.T) {
	for _, action := range Actions() {
		if !IsAction(action) {
			t.Errorf("%s 应为已注册动作", action)
		}
	}
	if IsAction("publish") {
		t.Error("publish 不是策展动作")
	}
}
