package export

import (
	"strings"

	"github.com/ByLCY/vellum/layout"
)

// Options 控制一次导出的页面几何与内容开关。零值可用：
// 等价于 A4 纵向、默认边距、transcript.pdf、不含图片与批注。
type Options struct {
	PageSize  string    // A3/A4/A5/Letter/Legal，大小写不敏感
	Landscape bool      // 横向时交换宽高
	Margins   []float64 // 边距覆写（mm）：nil、1、2 或 4 个值

	IncludeImages      bool // 渲染消息附带的图片
	IncludeAnnotations bool // 渲染消息的批注（思考）文本
	IncludeTimestamps  bool // 在消息末尾标注时间戳

	OutputName     string // 文档名，用于页脚插值与返回的文件名
	FooterBranding string // 页脚模板，支持 ${page} 与 ${name} 占位符
	AllowEmpty     bool   // 允许零会话导出，产出仅含页脚的单页
}

const (
	defaultPageSize       = "A4"
	defaultOutputName     = "transcript.pdf"
	defaultFooterBranding = "Vellum · ${name}"
)

// withDefaults 补齐未设置的字段，原值不修改。
func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.PageSize) == "" {
		o.PageSize = defaultPageSize
	}
	if strings.TrimSpace(o.OutputName) == "" {
		o.OutputName = defaultOutputName
	}
	if strings.TrimSpace(o.FooterBranding) == "" {
		o.FooterBranding = defaultFooterBranding
	}
	return o
}

// geometry 把页面选项解析为本次导出的固定几何。
func (o Options) geometry() (layout.Geometry, error) {
	return layout.ResolveGeometry(o.PageSize, o.Landscape, o.Margins)
}
