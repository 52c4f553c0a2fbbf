package export

import (
	"fmt"

	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/renderer"
	"github.com/ByLCY/vellum/session"
)

// Document 是一次导出的最终产物。
type Document struct {
	Name      string    `json:"name"`
	Bytes     []byte    `json:"-"`
	PageCount int       `json:"pageCount"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// Export 装配并渲染会话记录。渲染后端必须同时实现 layout.Measurer，
// 布局阶段用它测量文本，渲染阶段用同一套字体绘制，两者不会漂移。
func Export(sessions []session.Session, images map[string]session.Image, opts Options, r renderer.Renderer) (*Document, error) {
	m, ok := r.(layout.Measurer)
	if !ok {
		return nil, fmt.Errorf("export: 渲染后端未实现文本测量接口")
	}
	opts = opts.withDefaults()

	result, warnings, err := Build(sessions, images, opts, m)
	if err != nil {
		return nil, err
	}
	data, err := r.Render(result)
	if err != nil {
		return nil, fmt.Errorf("渲染文档失败: %w", err)
	}
	return &Document{
		Name:      opts.OutputName,
		Bytes:     data,
		PageCount: len(result.Pages),
		Warnings:  warnings,
	}, nil
}
