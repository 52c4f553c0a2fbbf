package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

func TestResolvePageSize(t *testing.T) {
	w, h, err := ResolvePageSize("A4", false)
	if err != nil {
		t.Fatalf("A4 应是合法尺寸: %v", err)
	}
	if w != 210 || h != 297 {
		t.Fatalf("A4 期望 210x297，实际 %gx%g", w, h)
	}

	// 大小写不敏感
	if _, _, err := ResolvePageSize("letter", false); err != nil {
		t.Fatalf("letter 应是合法尺寸: %v", err)
	}

	// 横向交换宽高
	w, h, err = ResolvePageSize("A4", true)
	if err != nil {
		t.Fatalf("横向 A4 失败: %v", err)
	}
	if w != 297 || h != 210 {
		t.Fatalf("横向 A4 期望 297x210，实际 %gx%g", w, h)
	}

	if _, _, err := ResolvePageSize("B5", false); err == nil {
		t.Fatalf("未知尺寸应报错")
	}
}

func TestResolveMargins(t *testing.T) {
	m, err := ResolveMargins(nil)
	if err != nil {
		t.Fatalf("默认边距失败: %v", err)
	}
	if m.Top != DefaultMarginMM || m.Left != DefaultMarginMM {
		t.Fatalf("默认边距应为 %gmm，实际 %+v", DefaultMarginMM, m)
	}

	m, err = ResolveMargins([]float64{10})
	if err != nil {
		t.Fatalf("单值边距失败: %v", err)
	}
	if m.Top != 10 || m.Right != 10 || m.Bottom != 10 || m.Left != 10 {
		t.Fatalf("单值边距应作用于四边，实际 %+v", m)
	}

	m, err = ResolveMargins([]float64{10, 15})
	if err != nil {
		t.Fatalf("双值边距失败: %v", err)
	}
	if m.Top != 10 || m.Bottom != 10 || m.Left != 15 || m.Right != 15 {
		t.Fatalf("双值边距语义为上下/左右，实际 %+v", m)
	}

	m, err = ResolveMargins([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("四值边距失败: %v", err)
	}
	if m.Top != 1 || m.Right != 2 || m.Bottom != 3 || m.Left != 4 {
		t.Fatalf("四值边距顺序为上右下左，实际 %+v", m)
	}

	if _, err := ResolveMargins([]float64{1, 2, 3}); err == nil {
		t.Fatalf("三个边距值应报错")
	}
	if _, err := ResolveMargins([]float64{-1}); err == nil {
		t.Fatalf("负边距应报错")
	}
}

func TestResolveGeometry(t *testing.T) {
	geom, err := ResolveGeometry("A4", false, nil)
	if err != nil {
		t.Fatalf("解析几何失败: %v", err)
	}
	if got := geom.ContentWidth(); math.Abs(got-170) > 1e-9 {
		t.Fatalf("A4 默认边距内容宽度期望 170，实际 %g", got)
	}
	if geom.ContentTop() != DefaultMarginMM || geom.ContentBottom() != 297-DefaultMarginMM {
		t.Fatalf("内容区上下界不符: top=%g bottom=%g", geom.ContentTop(), geom.ContentBottom())
	}

	// 边距之和超过页面尺寸属于致命配置错误
	if _, err := ResolveGeometry("A5", false, []float64{80}); err == nil {
		t.Fatalf("边距吞掉整页应报错")
	}
}
