package service

import "testing"

func TestRequestTitle(t *testing.T) {
	tests := []struct {
		name        string
		recordTitle string
		pid         string
		want        string
	}{
		{"有标题", "Deep Sea Data", "abc-123", "RDM Curation: Deep Sea Data"},
		{"无标题回退PID", "", "abc-123", "RDM Curation: abc-123"},
		{"标题与PID都空", "", "", "RDM Curation: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequestTitle(tt.recordTitle, tt.pid); got != tt.want {
				t.Errorf("期望 %q, 实际 %q", tt.want, got)
			}
		})
	}
}
