package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	tableLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Cell", Pattern: `[^|\n]+`},
	})

	gridParser = participle.MustBuild[tableAST](
		participle.Lexer(tableLexer),
	)
)

// tableAST 是管道表格的语法树根节点。
type tableAST struct {
	Rows []*rowAST `parser:"Newline? ( @@ Newline? )+"`
}

// rowAST 捕获首个竖线之后的原始记号序列，单元格在 cells 中还原。
// 不在语法里直接表达"可为空的单元格"，避免空匹配循环。
type rowAST struct {
	Tokens []string `parser:"Pipe ( @Cell | @Pipe )+"`
}

// cells 按竖线切分记号序列：竖线封闭当前单元格，行尾缺竖线时补收。
func (r *rowAST) cells() []string {
	var out []string
	current := ""
	open := false
	for _, tok := range r.Tokens {
		if tok == "|" {
			out = append(out, strings.TrimSpace(current))
			current = ""
			open = false
			continue
		}
		current = tok
		open = true
	}
	if open {
		out = append(out, strings.TrimSpace(current))
	}
	return out
}

// Grid 是解析成功的矩形表格：首个非分隔行为表头，其余为数据行，
// 所有行列数一致。
type Grid struct {
	Headers []string
	Rows    [][]string
}

// separatorCell 匹配 markdown 风格的分隔单元格，如 --- 或 :---:。
var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// ParseGrid 把一个表格块解析成矩形网格。分隔行被跳过；
// 任意一行列数与表头不符即返回错误，由调用方降级为纯文本。
func ParseGrid(raw string) (Grid, error) {
	ast, err := gridParser.ParseString("", normalizeTable(raw))
	if err != nil {
		return Grid{}, fmt.Errorf("解析表格失败: %w", err)
	}

	var grid Grid
	arity := -1
	for idx, row := range ast.Rows {
		cells := row.cells()
		if isSeparatorRow(cells) {
			continue
		}
		if arity == -1 {
			arity = len(cells)
			grid.Headers = cells
			continue
		}
		if len(cells) != arity {
			return Grid{}, fmt.Errorf("表格第 %d 行有 %d 列，表头有 %d 列", idx+1, len(cells), arity)
		}
		grid.Rows = append(grid.Rows, cells)
	}
	if arity == -1 {
		return Grid{}, fmt.Errorf("表格没有表头行")
	}
	return grid, nil
}

// normalizeTable 去掉行首尾空白，使每行都以竖线开头，便于词法分析。
func normalizeTable(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isSeparatorRow 判断一行是否全部由 --- 形式的分隔单元格构成。
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}
