package layout

import (
	"fmt"

	"github.com/ByLCY/vellum/binding"
)

const (
	// BlockSpacing 是相邻内容块之间的默认垂直间距（mm）。
	BlockSpacing = 3.0

	// MinChunkLines 是一页上允许出现的最小文本片段行数：
	// 剩余空间放不下这么多行时先换页，避免孤行。经验阈值，可调。
	MinChunkLines = 2

	// footerGap 是内容底线与页脚文字之间的间隔（mm）。
	footerGap = 4.0

	invariantEps = 1e-6
)

// pageContent 累积单页的可渲染元素，页脚在换页或收尾时盖章。
type pageContent struct {
	texts  []TextBox
	tables []TableBox
	images []ImageBox
	lines  []Line
	footer Footer
}

// Flow 是页面流控制器：独占输出游标（当前页号与纵向偏移），
// 决定何时换页并为每一页盖上页脚。其余组件只通过 Reserve/Advance
// 申请高度，不直接触碰页面坐标。
type Flow struct {
	geom       Geometry
	theme      Theme
	footerTmpl string
	docName    string

	pages   []*pageContent
	cursorY float64
	pageNo  int // 1 起始；0 表示尚未创建任何页面
}

// NewFlow 创建页面流控制器。footerTmpl 支持 ${page} 与 ${name} 占位符。
func NewFlow(geom Geometry, theme Theme, footerTmpl, docName string) *Flow {
	return &Flow{
		geom:       geom,
		theme:      theme,
		footerTmpl: footerTmpl,
		docName:    docName,
	}
}

// Geometry 返回导出期间不可变的页面几何。
func (f *Flow) Geometry() Geometry { return f.geom }

// ContentWidth 返回内容宽度。
func (f *Flow) ContentWidth() float64 { return f.geom.ContentWidth() }

// CursorY 返回当前页内的纵向偏移。首次访问会惰性创建第一页。
func (f *Flow) CursorY() float64 {
	f.ensurePage()
	return f.cursorY
}

// PageNumber 返回当前页号（1 起始）。
func (f *Flow) PageNumber() int {
	f.ensurePage()
	return f.pageNo
}

// Remaining 返回当前页剩余的内容高度。
func (f *Flow) Remaining() float64 {
	f.ensurePage()
	return f.geom.ContentBottom() - f.cursorY
}

// LineCapacity 返回当前页剩余空间还能容纳多少行给定行高的文本。
func (f *Flow) LineCapacity(lineHeight float64) int {
	if lineHeight <= 0 {
		return 0
	}
	n := int((f.Remaining() + invariantEps) / lineHeight)
	if n < 0 {
		return 0
	}
	return n
}

// Reserve 查询 height 是否能放进当前页剩余空间。
func (f *Flow) Reserve(height float64) bool {
	return height <= f.Remaining()+invariantEps
}

// Advance 将游标下移 height。调用方必须先用 Reserve 确认空间足够，
// 越过内容底线属于编程错误，直接 panic。
func (f *Flow) Advance(height float64) {
	f.ensurePage()
	if f.cursorY+height > f.geom.ContentBottom()+invariantEps {
		panic(fmt.Sprintf("layout: Advance(%g) 越过页面底部（cursor=%g bottom=%g），缺少成功的 Reserve",
			height, f.cursorY, f.geom.ContentBottom()))
	}
	f.cursorY += height
}

// Spacing 在块之间插入间距；放不下时静默吃掉，不触发换页。
func (f *Flow) Spacing(height float64) {
	if rem := f.Remaining(); height > rem {
		height = rem
	}
	if height > 0 {
		f.cursorY += height
	}
}

// BreakPage 为当前页盖章页脚，追加新页并把游标重置到内容顶部。
func (f *Flow) BreakPage() {
	f.ensurePage()
	f.stampFooter()
	f.pages = append(f.pages, &pageContent{})
	f.pageNo++
	f.cursorY = f.geom.ContentTop()
}

// AppendText 将文本块登记到当前页。
func (f *Flow) AppendText(tb TextBox) {
	f.curr().texts = append(f.curr().texts, tb)
}

// AppendTable 将表格段登记到当前页。
func (f *Flow) AppendTable(t TableBox) {
	f.curr().tables = append(f.curr().tables, t)
}

// AppendImage 将图片登记到当前页。
func (f *Flow) AppendImage(img ImageBox) {
	f.curr().images = append(f.curr().images, img)
}

// AppendLine 将线段登记到当前页。
func (f *Flow) AppendLine(ln Line) {
	f.curr().lines = append(f.curr().lines, ln)
}

// Finalize 为最后一页盖章页脚并返回全部页面。之后不应再写入内容。
func (f *Flow) Finalize() []Page {
	f.ensurePage()
	f.stampFooter()
	out := make([]Page, len(f.pages))
	for i, pc := range f.pages {
		out[i] = Page{
			Width:  f.geom.Width,
			Height: f.geom.Height,
			Margin: f.geom.Margin,
			Texts:  pc.texts,
			Tables: pc.tables,
			Images: pc.images,
			Lines:  pc.lines,
			Footer: pc.footer,
		}
	}
	return out
}

func (f *Flow) ensurePage() {
	if len(f.pages) == 0 {
		f.pages = append(f.pages, &pageContent{})
		f.pageNo = 1
		f.cursorY = f.geom.ContentTop()
	}
}

func (f *Flow) curr() *pageContent {
	f.ensurePage()
	return f.pages[len(f.pages)-1]
}

// stampFooter 在当前页底部写入品牌文字（左）与页码（右）。
func (f *Flow) stampFooter() {
	pc := f.curr()
	if pc.footer.PageNumber != 0 {
		return // 已盖章
	}
	y := f.geom.ContentBottom() + footerGap
	width := f.geom.ContentWidth()
	branding := binding.Interpolate(f.footerTmpl, map[string]any{
		"page": f.pageNo,
		"name": f.docName,
	})
	lineHeight := f.theme.LineHeight(f.theme.FooterSize)
	mk := func(content, align string) TextBox {
		return TextBox{
			X:          f.geom.Margin.Left,
			Y:          y,
			Width:      width,
			LineHeight: lineHeight,
			Font:       f.theme.Body,
			FontSize:   f.theme.FooterSize,
			Color:      f.theme.MetaColor,
			Align:      align,
			Lines:      []TextLine{{Content: content}},
		}
	}
	pc.footer = Footer{
		PageNumber: f.pageNo,
		Texts: []TextBox{
			mk(branding, "left"),
			mk(fmt.Sprintf("Page %d", f.pageNo), "right"),
		},
	}
}
