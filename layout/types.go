package layout

// 该文件定义布局结果的值类型，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与尺寸均以毫米（mm）为单位，原点在页面左上角。

// Result 保存分页后的全部页面与文档元信息。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Geometry 描述整份文档共用的页面几何，导出期间不可变。
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// ContentWidth 返回去除左右边距后的内容宽度。
func (g Geometry) ContentWidth() float64 {
	return g.Width - g.Margin.Left - g.Margin.Right
}

// ContentTop 返回内容区域顶部的 Y 坐标。
func (g Geometry) ContentTop() float64 { return g.Margin.Top }

// ContentBottom 返回内容区域底部的 Y 坐标。
func (g Geometry) ContentBottom() float64 { return g.Height - g.Margin.Bottom }

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`

	Texts  []TextBox  `json:"texts"`
	Tables []TableBox `json:"tables"`
	Images []ImageBox `json:"images"`
	Lines  []Line     `json:"lines,omitempty"`

	// Footer 为本页独有：页码逐页递增。
	Footer Footer `json:"footer"`
}

// Footer 记录盖在页面底部的页脚：品牌文字与页码。
type Footer struct {
	PageNumber int       `json:"pageNumber"`
	Texts      []TextBox `json:"texts"`
}

// FontResource 标识一个字体资源，Src 形如 "embed:goregular"。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style,omitempty"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width"`
	LineHeight float64      `json:"lineHeight"`
	Font       FontResource `json:"font"`
	FontSize   float64      `json:"fontSize"`
	Color      Color        `json:"color"`
	Align      string       `json:"align,omitempty"` // left（默认）/center/right
	Lines      []TextLine   `json:"lines"`
}

// Height 返回文本块占用的总高度。
func (tb TextBox) Height() float64 {
	return float64(len(tb.Lines)) * tb.LineHeight
}

// TextLine 表示排版后的一行文本及其实测宽度。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// TableBox 保存一段表格的布局信息。跨页的表格会拆成多个 TableBox，
// 每段都以重绘的表头行开始。
type TableBox struct {
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Width        float64    `json:"width"`
	ColumnWidths []float64  `json:"columnWidths"`
	Rows         []TableRow `json:"rows"`
	BorderColor  Color      `json:"borderColor"`
}

// TableRow 记录每一行的高度与单元格。
type TableRow struct {
	Y        float64     `json:"y"`
	Height   float64     `json:"height"`
	IsHeader bool        `json:"isHeader"`
	Cells    []TableCell `json:"cells"`
}

// TableCell 复用 TextBox 作为单元格内容。
type TableCell struct {
	Text TextBox `json:"text"`
}

// ImageBox 用于描述图片位置与尺寸；Ref 指向渲染器登记的图片字节。
type ImageBox struct {
	Ref    string  `json:"ref"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 表示一条线段（如会话分隔线）。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
}
