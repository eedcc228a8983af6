package service

import (
	"errors"
	"testing"

	"rdm/curations/internal/model"
)

// 发布闸口矩阵: 首次发布始终要求请求通过，已发布记录仅在允许直接修订时豁免
func TestPublishGateExempt(t *testing.T) {
	tests := []struct {
		name                 string
		isPublished          bool
		allowPublishingEdits bool
		want                 bool
	}{
		{"首次发布默认配置", false, false, false},
		{"首次发布允许修订", false, true, false},
		{"已发布默认配置", true, false, false},
		{"已发布允许修订", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publishGateExempt(tt.isPublished, tt.allowPublishingEdits); got != tt.want {
				t.Errorf("期望 %v, 实际 %v", tt.want, got)
			}
		})
	}
}

func TestCheckPublishGate(t *testing.T) {
	if err := checkPublishGate(nil); !errors.Is(err, ErrCurationRequestMissing) {
		t.Errorf("无请求期望 ErrCurationRequestMissing, 实际 %v", err)
	}

	for _, status := range allStatuses {
		request := &model.CurationRequest{Status: status, IsOpen: model.IsOpenStatus(status)}
		err := checkPublishGate(request)
		if status == model.RequestStatusAccepted {
			if err != nil {
				t.Errorf("已通过请求期望放行, 实际 %v", err)
			}
		} else if !errors.Is(err, ErrCurationRequestNotAccepted) {
			t.Errorf("状态 %s 期望 ErrCurationRequestNotAccepted, 实际 %v", status, err)
		}
	}
}

func TestMetadataTitle(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{"正常标题", map[string]any{"title": "量子退火综述"}, "量子退火综述"},
		{"标题缺失", map[string]any{"year": 2024}, ""},
		{"标题非字符串", map[string]any{"title": 42}, ""},
		{"元数据为空", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metadataTitle(tt.metadata); got != tt.want {
				t.Errorf("期望 %q, 实际 %q", tt.want, got)
			}
		})
	}
}
