package layout

import (
	"fmt"
	"strings"
)

// This file defines unit helpers and page geometry resolution. The engine
// works in millimeters throughout; pt only appears at the font boundary.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// DefaultMarginMM is applied when the caller supplies no margin override.
const DefaultMarginMM = 20.0

// pagePresets maps a preset name to portrait {width, height} in mm.
var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// ResolvePageSize returns the page dimensions for a preset name. Landscape
// swaps width and height. Unknown presets are a fatal configuration error.
func ResolvePageSize(preset string, landscape bool) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(preset))]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", preset)
	}
	width, height := base[0], base[1]
	if landscape {
		width, height = height, width
	}
	return width, height, nil
}

// ResolveMargins interprets a margin override in mm:
// nil or empty — DefaultMarginMM on all sides;
// 1 value — all sides; 2 values — top/bottom, left/right;
// 4 values — top, right, bottom, left.
func ResolveMargins(vals []float64) (Margin, error) {
	switch len(vals) {
	case 0:
		v := DefaultMarginMM
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 1:
		v := vals[0]
		if v < 0 {
			return Margin{}, fmt.Errorf("边距不能为负数：%g", v)
		}
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return checkMargin(Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]})
	case 4:
		return checkMargin(Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]})
	default:
		return Margin{}, fmt.Errorf("边距需要 1、2 或 4 个值，实际 %d 个", len(vals))
	}
}

func checkMargin(m Margin) (Margin, error) {
	for _, v := range []float64{m.Top, m.Right, m.Bottom, m.Left} {
		if v < 0 {
			return Margin{}, fmt.Errorf("边距不能为负数：%g", v)
		}
	}
	return m, nil
}

// ResolveGeometry combines a page preset, orientation and margin override
// into the immutable per-export geometry.
func ResolveGeometry(preset string, landscape bool, margins []float64) (Geometry, error) {
	width, height, err := ResolvePageSize(preset, landscape)
	if err != nil {
		return Geometry{}, err
	}
	margin, err := ResolveMargins(margins)
	if err != nil {
		return Geometry{}, err
	}
	if margin.Left+margin.Right >= width || margin.Top+margin.Bottom >= height {
		return Geometry{}, fmt.Errorf("边距之和超过页面尺寸 %gx%gmm", width, height)
	}
	return Geometry{Width: width, Height: height, Margin: margin}, nil
}
