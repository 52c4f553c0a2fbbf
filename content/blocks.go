// Package content 将消息原文切分成带类型的内容块（纯文本/管道表格），
// 并负责把表格块解析成矩形网格。解析失败不致命：调用方把原文退回纯文本。
package content

import (
	"regexp"
	"strings"
)

// BlockKind 标记内容块的类型。
type BlockKind int

const (
	TextBlock BlockKind = iota
	TableBlock
)

// Block 是消息内容的一个分类单元，Raw 保留原文以便表格解析失败时回退。
type Block struct {
	Kind BlockKind
	Raw  string
}

// tableLinePattern 匹配形如 |cell|cell| 的管道分隔行。
var tableLinePattern = regexp.MustCompile(`^\s*\|.*\|\s*$`)

// Classify 将消息原文按顺序切成内容块：连续 ≥2 行的管道行构成一个
// TableBlock，其余文本归入 TextBlock；块内顺序与原文一致。
func Classify(raw string) []Block {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var blocks []Block
	var text []string

	flushText := func() {
		if len(text) == 0 {
			return
		}
		joined := strings.Join(text, "\n")
		if strings.TrimSpace(joined) != "" {
			blocks = append(blocks, Block{Kind: TextBlock, Raw: joined})
		}
		text = nil
	}

	i := 0
	for i < len(lines) {
		if !tableLinePattern.MatchString(lines[i]) {
			text = append(text, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && tableLinePattern.MatchString(lines[j]) {
			j++
		}
		if j-i < 2 {
			// 孤立的管道行按普通文本处理
			text = append(text, lines[i:j]...)
			i = j
			continue
		}
		flushText()
		blocks = append(blocks, Block{Kind: TableBlock, Raw: strings.Join(lines[i:j], "\n")})
		i = j
	}
	flushText()
	return blocks
}
