package diff

import (
	"errors"
	"testing"
)

func TestCleanupHTMLTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"无标签原样返回", "plain text", "plain text"},
		{"单层标签", "<p>hello</p>", "hello"},
		{"嵌套标签", "<div><p>a <b>b</b> c</p></div>", "a b c"},
		{"标签带属性", `<a href="http://example.com">link</a>`, "link"},
		{"字符实体还原", "<p>a &amp; b</p>", "a & b"},
		{"多段文本拼接", "<h3>title</h3><p>body</p>", "titlebody"},
		{"空字符串", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanupHTMLTags(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CleanupHTMLTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanupHTMLTagsNonString(t *testing.T) {
	for _, input := range []any{nil, 42, []any{"a"}, map[string]any{"k": "v"}} {
		if _, err := CleanupHTMLTags(input); !errors.Is(err, ErrHTMLParse) {
			t.Errorf("CleanupHTMLTags(%v) error = %v, want ErrHTMLParse", input, err)
		}
	}
}
