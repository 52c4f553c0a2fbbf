package layout

import (
	"math"
	"testing"
)

func TestFitBox(t *testing.T) {
	// 1600x800 放进 120x80：缩放比取 min(0.075, 0.1)
	w, h := FitBox(1600, 800, 120, 80)
	if math.Abs(w-120) > 1e-9 || math.Abs(h-60) > 1e-9 {
		t.Fatalf("期望 120x60，实际 %gx%g", w, h)
	}

	// 高受限时以高为准
	w, h = FitBox(100, 400, 120, 100)
	if math.Abs(h-100) > 1e-9 || math.Abs(w-25) > 1e-9 {
		t.Fatalf("期望 25x100，实际 %gx%g", w, h)
	}
}

func TestPlaceImageCentersHorizontally(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	f := NewFlow(testGeometry(), th, "${name}", "demo")

	err := PlaceImage(f, ImageSpec{Ref: "img1", Width: 100, Height: 100}, 40, th, m)
	if err != nil {
		t.Fatalf("排图失败: %v", err)
	}
	pages := f.Finalize()
	if len(pages[0].Images) != 1 {
		t.Fatalf("第一页应有一张图片")
	}
	img := pages[0].Images[0]
	// 内容宽 80，限制高 40 → 40x40，水平居中于 10 + (80-40)/2
	if math.Abs(img.Width-40) > 1e-9 || math.Abs(img.Height-40) > 1e-9 {
		t.Fatalf("缩放后期望 40x40，实际 %gx%g", img.Width, img.Height)
	}
	if math.Abs(img.X-30) > 1e-9 {
		t.Fatalf("图片应水平居中于 X=30，实际 %g", img.X)
	}
}

func TestPlaceImageBreaksWhenNoSpace(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	f := NewFlow(testGeometry(), th, "${name}", "demo")
	f.Advance(70) // 剩余 10mm

	err := PlaceImage(f, ImageSpec{Ref: "img1", Width: 100, Height: 100}, 40, th, m)
	if err != nil {
		t.Fatalf("排图失败: %v", err)
	}
	pages := f.Finalize()
	if len(pages) != 2 {
		t.Fatalf("空间不足应换页，期望 2 页，实际 %d", len(pages))
	}
	if len(pages[0].Images) != 0 || len(pages[1].Images) != 1 {
		t.Fatalf("图片应整体落在第二页")
	}
}

func TestPlaceImageCaptionFollows(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	f := NewFlow(testGeometry(), th, "${name}", "demo")

	err := PlaceImage(f, ImageSpec{Ref: "img1", Width: 100, Height: 50, Caption: "figure one"}, 40, th, m)
	if err != nil {
		t.Fatalf("排图失败: %v", err)
	}
	pages := f.Finalize()
	if len(pages[0].Texts) != 1 {
		t.Fatalf("说明文字应落在图片所在页")
	}
	caption := pages[0].Texts[0]
	if caption.Align != "center" {
		t.Fatalf("说明文字应居中，实际 %q", caption.Align)
	}
	img := pages[0].Images[0]
	if caption.Y <= img.Y+img.Height {
		t.Fatalf("说明文字应在图片下方: caption.Y=%g 图片底=%g", caption.Y, img.Y+img.Height)
	}
}

func TestPlaceImageRejectsInvalidDims(t *testing.T) {
	m := stubMeasurer{unit: 2}
	th := DefaultTheme()
	f := NewFlow(testGeometry(), th, "${name}", "demo")
	if err := PlaceImage(f, ImageSpec{Ref: "bad", Width: 0, Height: 100}, 40, th, m); err == nil {
		t.Fatalf("非法固有尺寸应报错")
	}
}
