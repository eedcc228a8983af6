package diff

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrHTMLParse HTML 清洗失败
var ErrHTMLParse = errors.New("could not parse html input")

// CleanupHTMLTags 去除文本中的 HTML 标签，只保留文本内容，字符实体会被还原
// 入参不是字符串时返回 ErrHTMLParse
func CleanupHTMLTags(value any) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", ErrHTMLParse
	}
	if !strings.ContainsAny(text, "<>") {
		return text, nil
	}

	var sb strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if errors.Is(tokenizer.Err(), io.EOF) {
				return sb.String(), nil
			}
			return "", ErrHTMLParse
		case html.TextToken:
			sb.Write(tokenizer.Text())
		}
	}
}
