package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// placeholder 替换无法确定性测量的字符，引擎只对它能测量的文本排版。
const placeholder = '?'

// SanitizeText 将文本归一为可确定性测量的形式：NFC 归一化、
// 统一换行符、制表符转空格、其余控制字符与非法字节替换为占位符。
// 第二个返回值表示内容是否被替换过。
func SanitizeText(s string) (string, bool) {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	replaced := false
	for _, r := range s {
		switch {
		case r == '\r':
			// \r\n 折叠为 \n，不算替换
		case r == '\n':
			b.WriteRune('\n')
		case r == '\t':
			b.WriteString("    ")
		case r == utf8.RuneError, unicode.IsControl(r):
			b.WriteRune(placeholder)
			replaced = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), replaced
}

// WrapText 把文本折成宽度不超过 width 的行序列：贪心算法，
// 逐词累积直到超宽；比整行还宽的单词独占一行，不做断词。
// 显式换行符保留。对相同输入结果恒定。
func WrapText(content string, width float64, font FontResource, fontSize float64, m Measurer) ([]TextLine, error) {
	var lines []TextLine
	for _, hard := range strings.Split(content, "\n") {
		words := strings.Fields(hard)
		if len(words) == 0 {
			lines = append(lines, TextLine{Content: ""})
			continue
		}
		current := ""
		currentW := 0.0
		emit := func() {
			if current != "" {
				lines = append(lines, TextLine{Content: current, Width: currentW})
				current = ""
				currentW = 0
			}
		}
		for _, word := range words {
			if current == "" {
				w, err := m.Measure(word, font, fontSize)
				if err != nil {
					return nil, err
				}
				if w > width {
					lines = append(lines, TextLine{Content: word, Width: w})
					continue
				}
				current, currentW = word, w
				continue
			}
			candidate := current + " " + word
			w, err := m.Measure(candidate, font, fontSize)
			if err != nil {
				return nil, err
			}
			if w <= width {
				current, currentW = candidate, w
				continue
			}
			emit()
			w, err = m.Measure(word, font, fontSize)
			if err != nil {
				return nil, err
			}
			if w > width {
				lines = append(lines, TextLine{Content: word, Width: w})
				continue
			}
			current, currentW = word, w
		}
		emit()
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: ""}}
	}
	return lines, nil
}

// Compose 在给定宽度内折行并组装文本块；X/Y/Align 由调用方回填。
func (t Theme) Compose(content string, width float64, font FontResource, fontSize float64, color Color, m Measurer) (TextBox, error) {
	lines, err := WrapText(content, width, font, fontSize, m)
	if err != nil {
		return TextBox{}, err
	}
	return TextBox{
		Width:      width,
		LineHeight: t.LineHeight(fontSize),
		Font:       font,
		FontSize:   fontSize,
		Color:      color,
		Lines:      lines,
	}, nil
}
