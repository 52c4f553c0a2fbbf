package layout

// Measurer 负责测量一段文本在给定字体与字号下的渲染宽度（mm）。
// 由渲染后端实现并注入布局组件；对相同输入必须返回相同结果，
// 否则贪心折行的正确性无法保证。
type Measurer interface {
	Measure(text string, font FontResource, fontSize float64) (float64, error)
}

// Theme 汇总整份导出共用的字体与配色，构造一次后不再修改。
type Theme struct {
	Body   FontResource
	Bold   FontResource
	Italic FontResource
	Mono   FontResource

	BodySize    float64 // 正文字号（mm）
	LabelSize   float64 // 消息作者标签
	TitleSize   float64 // 会话标题
	MetaSize    float64 // 元信息、续页标记、时间戳
	CaptionSize float64 // 图片说明
	FooterSize  float64 // 页脚

	LineFactor float64 // 行高 = 字号 × LineFactor

	TextColor   Color
	MetaColor   Color
	BorderColor Color
}

// LineHeight 返回给定字号对应的行高（mm）。
func (t Theme) LineHeight(fontSize float64) float64 {
	return fontSize * t.LineFactor
}

// DefaultTheme 返回引擎默认的样式配置。
func DefaultTheme() Theme {
	return Theme{
		Body:   FontResource{Name: "Body", Src: "embed:goregular"},
		Bold:   FontResource{Name: "Bold", Src: "embed:gobold", Style: "bold"},
		Italic: FontResource{Name: "Italic", Src: "embed:goitalic", Style: "italic"},
		Mono:   FontResource{Name: "Mono", Src: "embed:gomono"},

		BodySize:    11 * PtToMm,
		LabelSize:   11 * PtToMm,
		TitleSize:   15 * PtToMm,
		MetaSize:    8.5 * PtToMm,
		CaptionSize: 9 * PtToMm,
		FooterSize:  8 * PtToMm,

		LineFactor: 1.4,

		TextColor:   Color{R: 30, G: 30, B: 30},
		MetaColor:   Color{R: 120, G: 120, B: 120},
		BorderColor: Color{R: 200, G: 200, B: 200},
	}
}
