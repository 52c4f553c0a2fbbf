package layout

import (
	"fmt"
	"math"
	"strings"
)

const (
	cellPadding    = 1.2  // 单元格内边距（mm）
	minColumnWidth = 14.0 // 列宽下限（mm），随整体缩放前生效
	columnCapShare = 0.5  // 单列最多占表宽的一半
	cellMaxLines   = 2    // 每个单元格固定保留两行
	ellipsis       = "…"
)

// ColumnWidths 计算各列宽度：自然宽度 = max(表头, 各行单元格) + 2×内边距，
// 先夹到 [minColumnWidth, 0.5×表宽]，再整体按比例缩放，使列宽之和
// 恰好等于表宽；舍入残差由最后一列吸收。
func ColumnWidths(headers []string, rows [][]string, tableWidth float64, font FontResource, fontSize float64, m Measurer) ([]float64, error) {
	n := len(headers)
	if n == 0 {
		return nil, fmt.Errorf("layout: 表格至少需要一列")
	}
	widths := make([]float64, n)
	for i := 0; i < n; i++ {
		w, err := m.Measure(strings.TrimSpace(headers[i]), font, fontSize)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			cw, err := m.Measure(strings.TrimSpace(row[i]), font, fontSize)
			if err != nil {
				return nil, err
			}
			if cw > w {
				w = cw
			}
		}
		w += 2 * cellPadding
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if limit := columnCapShare * tableWidth; w > limit {
			w = limit
		}
		widths[i] = w
	}

	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	scale := tableWidth / sum
	acc := 0.0
	for i := 0; i < n-1; i++ {
		widths[i] *= scale
		acc += widths[i]
	}
	widths[n-1] = tableWidth - acc

	// 不变式：列宽之和等于表宽（构造保证，违背属于编程错误）。
	check := 0.0
	for _, w := range widths {
		check += w
	}
	if math.Abs(check-tableWidth) > invariantEps {
		panic(fmt.Sprintf("layout: 列宽之和 %g 偏离表宽 %g", check, tableWidth))
	}
	return widths, nil
}

// PlaceTable 将一个矩形表格排入页面流。行高固定为两行文本；
// 每写一行前询问剩余空间，放不下时封box换页并重绘表头。
func PlaceTable(f *Flow, headers []string, rows [][]string, th Theme, m Measurer) error {
	tableWidth := f.ContentWidth()
	widths, err := ColumnWidths(headers, rows, tableWidth, th.Body, th.BodySize, m)
	if err != nil {
		return err
	}
	rowHeight := 2*cellPadding + float64(cellMaxLines)*th.LineHeight(th.BodySize)

	// 孤儿保护：表头后至少跟一行数据，放不下就先换页。
	need := rowHeight
	if len(rows) > 0 {
		need = 2 * rowHeight
	}
	if !f.Reserve(need) {
		f.BreakPage()
	}
	if !f.Reserve(rowHeight) {
		return fmt.Errorf("layout: 页面高度放不下表格行（行高 %gmm）", rowHeight)
	}

	x := f.Geometry().Margin.Left
	newBox := func() TableBox {
		return TableBox{
			X:            x,
			Y:            f.CursorY(),
			Width:        tableWidth,
			ColumnWidths: widths,
			BorderColor:  th.BorderColor,
		}
	}
	writeRow := func(box *TableBox, cells []string, header bool) error {
		row, err := buildTableRow(cells, header, x, f.CursorY(), widths, rowHeight, th, m)
		if err != nil {
			return err
		}
		box.Rows = append(box.Rows, row)
		f.Advance(rowHeight)
		return nil
	}

	box := newBox()
	if err := writeRow(&box, headers, true); err != nil {
		return err
	}
	for _, r := range rows {
		if !f.Reserve(rowHeight) {
			f.AppendTable(box)
			f.BreakPage()
			if !f.Reserve(rowHeight) {
				return fmt.Errorf("layout: 页面高度放不下表格行（行高 %gmm）", rowHeight)
			}
			box = newBox()
			if err := writeRow(&box, headers, true); err != nil {
				return err
			}
		}
		if err := writeRow(&box, r, false); err != nil {
			return err
		}
	}
	f.AppendTable(box)
	return nil
}

// buildTableRow 组装一行的各单元格文本框。
func buildTableRow(cells []string, header bool, x, y float64, widths []float64, rowHeight float64, th Theme, m Measurer) (TableRow, error) {
	row := TableRow{Y: y, Height: rowHeight, IsHeader: header}
	font := th.Body
	if header {
		font = th.Bold
	}
	colX := x
	for i, content := range cells {
		inner := widths[i] - 2*cellPadding
		lines, err := clipCellLines(strings.TrimSpace(content), inner, font, th.BodySize, m)
		if err != nil {
			return TableRow{}, err
		}
		row.Cells = append(row.Cells, TableCell{Text: TextBox{
			X:          colX + cellPadding,
			Y:          y + cellPadding,
			Width:      inner,
			LineHeight: th.LineHeight(th.BodySize),
			Font:       font,
			FontSize:   th.BodySize,
			Color:      th.TextColor,
			Lines:      lines,
		}})
		colX += widths[i]
	}
	return row, nil
}

// clipCellLines 将单元格文本折行并截断到两行，
// 溢出时末行以省略号结尾。
func clipCellLines(content string, width float64, font FontResource, fontSize float64, m Measurer) ([]TextLine, error) {
	lines, err := WrapText(content, width, font, fontSize, m)
	if err != nil {
		return nil, err
	}
	if len(lines) <= cellMaxLines {
		return lines, nil
	}
	clipped := lines[:cellMaxLines]
	last, err := ellipsize(clipped[cellMaxLines-1].Content, width, font, fontSize, m)
	if err != nil {
		return nil, err
	}
	clipped[cellMaxLines-1] = last
	return clipped, nil
}

// ellipsize 在行尾加省略号，并逐字回退直到整行放得下。
func ellipsize(content string, width float64, font FontResource, fontSize float64, m Measurer) (TextLine, error) {
	runes := []rune(content)
	for len(runes) > 0 {
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		w, err := m.Measure(candidate, font, fontSize)
		if err != nil {
			return TextLine{}, err
		}
		if w <= width {
			return TextLine{Content: candidate, Width: w}, nil
		}
		runes = runes[:len(runes)-1]
	}
	w, err := m.Measure(ellipsis, font, fontSize)
	if err != nil {
		return TextLine{}, err
	}
	return TextLine{Content: ellipsis, Width: w}, nil
}
