// Package renderer 定义布局结果到最终文件的输出接口。
package renderer

import "github.com/ByLCY/vellum/layout"

// Renderer 把布局结果渲染为文件字节（例如 PDF）。
// 渲染后端通常同时实现 layout.Measurer，保证测量与绘制使用同一套字体。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
