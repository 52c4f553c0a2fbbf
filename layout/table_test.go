package layout

import (
	"math"
	"strings"
	"testing"
)

func TestColumnWidthsSumEqualsTableWidth(t *testing.T) {
	m := stubMeasurer{unit: 2}
	widths, err := ColumnWidths(
		[]string{"alpha", "beta", "gamma"},
		[][]string{{"one", "two", "three"}},
		80, FontResource{}, 4, m,
	)
	if err != nil {
		t.Fatalf("计算列宽失败: %v", err)
	}
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	if math.Abs(sum-80) > 1e-9 {
		t.Fatalf("列宽之和期望精确等于表宽 80，实际 %g", sum)
	}
}

func TestColumnWidthsClampAndScale(t *testing.T) {
	m := stubMeasurer{unit: 2}
	// 第二列自然宽度远超表宽的一半，应先夹到 40 再整体缩放
	widths, err := ColumnWidths(
		[]string{"short", strings.Repeat("x", 100)},
		nil, 80, FontResource{}, 4, m,
	)
	if err != nil {
		t.Fatalf("计算列宽失败: %v", err)
	}
	// 夹取后的自然宽度为 14 与 40，缩放保持比例
	if ratio := widths[0] / widths[1]; math.Abs(ratio-14.0/40.0) > 1e-9 {
		t.Fatalf("列宽比例应保持 14:40，实际 %g:%g", widths[0], widths[1])
	}
	if math.Abs(widths[0]+widths[1]-80) > 1e-9 {
		t.Fatalf("列宽之和期望 80，实际 %g", widths[0]+widths[1])
	}
}

func TestColumnWidthsScaleDown(t *testing.T) {
	m := stubMeasurer{unit: 2}
	wide := strings.Repeat("y", 30)
	widths, err := ColumnWidths([]string{wide, wide, wide}, nil, 80, FontResource{}, 4, m)
	if err != nil {
		t.Fatalf("计算列宽失败: %v", err)
	}
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	if math.Abs(sum-80) > 1e-9 {
		t.Fatalf("缩小后列宽之和期望 80，实际 %g", sum)
	}
	if math.Abs(widths[0]-widths[1]) > 1e-9 {
		t.Fatalf("等宽列缩放后应保持等宽: %+v", widths)
	}
}

func TestColumnWidthsRejectsEmptyHeader(t *testing.T) {
	m := stubMeasurer{unit: 2}
	if _, err := ColumnWidths(nil, nil, 80, FontResource{}, 4, m); err == nil {
		t.Fatalf("零列表格应报错")
	}
}

func TestPlaceTableSplitsWithHeaderRedraw(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	geom := Geometry{Width: 100, Height: 70, Margin: Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}}
	f := NewFlow(geom, th, "${name}", "demo")

	rows := make([][]string, 8)
	for i := range rows {
		rows[i] = []string{"1", "2"}
	}
	if err := PlaceTable(f, []string{"a", "b"}, rows, th, m); err != nil {
		t.Fatalf("排表失败: %v", err)
	}

	pages := f.Finalize()
	// 行高约 13.27mm，内容高度 50mm：每页表头 + 2 行数据
	if len(pages) != 4 {
		t.Fatalf("期望跨 4 页，实际 %d", len(pages))
	}
	headerRows, dataRows := 0, 0
	for i, p := range pages {
		if len(p.Tables) != 1 {
			t.Fatalf("第 %d 页期望 1 个表格段，实际 %d", i+1, len(p.Tables))
		}
		seg := p.Tables[0]
		if len(seg.Rows) == 0 || !seg.Rows[0].IsHeader {
			t.Fatalf("第 %d 页的表格段应以表头开始", i+1)
		}
		for _, r := range seg.Rows {
			if r.IsHeader {
				headerRows++
			} else {
				dataRows++
			}
		}
	}
	if headerRows != 4 {
		t.Fatalf("每个表格段都应重绘表头，期望 4 个，实际 %d", headerRows)
	}
	if dataRows != 8 {
		t.Fatalf("数据行不应丢失或重复，期望 8 行，实际 %d", dataRows)
	}
}

func TestPlaceTableOrphanHeaderMovesToNextPage(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	f := NewFlow(testGeometry(), th, "${name}", "demo")
	f.Advance(60) // 剩余 20mm，放不下表头加一行数据

	if err := PlaceTable(f, []string{"a", "b"}, [][]string{{"1", "2"}}, th, m); err != nil {
		t.Fatalf("排表失败: %v", err)
	}
	pages := f.Finalize()
	if len(pages) != 2 {
		t.Fatalf("孤儿表头应整体后移，期望 2 页，实际 %d", len(pages))
	}
	if len(pages[0].Tables) != 0 {
		t.Fatalf("第一页不应残留表头")
	}
	if len(pages[1].Tables) != 1 || len(pages[1].Tables[0].Rows) != 2 {
		t.Fatalf("第二页应包含完整的表头加数据行")
	}
}

func TestClipCellLinesEllipsizes(t *testing.T) {
	m := stubMeasurer{unit: 2}
	lines, err := clipCellLines("aaaa bbbb cccc dddd eeee", 20, FontResource{}, 4, m)
	if err != nil {
		t.Fatalf("截断失败: %v", err)
	}
	if len(lines) != cellMaxLines {
		t.Fatalf("单元格应固定 %d 行，实际 %d", cellMaxLines, len(lines))
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last.Content, ellipsis) {
		t.Fatalf("溢出的末行应以省略号结尾: %q", last.Content)
	}
	if last.Width > 20+1e-9 {
		t.Fatalf("省略后末行仍超宽: %g", last.Width)
	}
}
