package auth

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  string
		want    bool
	}{
		{"全匹配", "*", "record:publish", true},
		{"精确匹配", "record:read", "record:read", true},
		{"精确不匹配", "record:read", "record:update", false},
		{"前缀通配", "record:*", "record:update", true},
		{"前缀通配不越界", "record:*", "curation:update", false},
		{"中段通配", "curation:*:read", "curation:request:read", true},
		{"中段通配不匹配尾部", "curation:*:read", "curation:request:write", false},
		{"单字符通配", "record:?ead", "record:read", true},
		{"单字符通配长度不符", "record:?ead", "record:rread", false},
		{"星号匹配空串", "record:*", "record:", true},
		{"连续星号", "record:**", "record:anything", true},
		{"尾部剩余模式", "record:read:extra", "record:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchWildcard(tt.pattern, tt.target); got != tt.want {
				t.Errorf("matchWildcard(%q, %q) = %v, 期望 %v", tt.pattern, tt.target, got, tt.want)
			}
		})
	}
}

// 前缀通配属性: prefix:* 命中所有以 prefix: 开头的目标
func TestMatchWildcardPrefixProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "prefix")
		rest := rapid.StringMatching(`[a-z:]{0,12}`).Draw(t, "rest")

		target := prefix + ":" + rest
		if !matchWildcard(prefix+":*", target) {
			t.Errorf("%q 应命中 %q", prefix+":*", target)
		}

		other := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "other")
		if !strings.HasPrefix(other+":", prefix+":") && matchWildcard(prefix+":*", other+":"+rest) {
			t.Errorf("%q 不应命中 %q", prefix+":*", other+":"+rest)
		}
	})
}

func TestMatchWildcardExactProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.StringMatching(`[a-z:]{1,16}`).Draw(t, "code")
		if !matchWildcard(code, code) {
			t.Errorf("%q 应命中自身", code)
		}
	})
}
