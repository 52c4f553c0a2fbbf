package layout

import "fmt"

const captionGap = 1.5 // 图片与说明文字的间隔（mm）

// ImageSpec 描述待排版的图片：固有尺寸、渲染器侧的字节引用与可选说明。
type ImageSpec struct {
	Ref     string
	Width   float64 // 固有宽度（任意一致单位）
	Height  float64 // 固有高度
	Caption string
}

// FitBox 把固有尺寸 (w, h) 等比缩放进限制框 (maxW, maxH)：
// scale = min(maxW/w, maxH/h)。
func FitBox(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}

// PlaceImage 将图片等比缩放进 (内容宽度 × maxHeight) 的限制框，
// 水平居中排入页面流；空间不足时先换页。说明文字跟在图片下方居中。
func PlaceImage(f *Flow, spec ImageSpec, maxHeight float64, th Theme, m Measurer) error {
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("layout: 图片 %s 的固有尺寸非法：%gx%g", spec.Ref, spec.Width, spec.Height)
	}
	contentWidth := f.ContentWidth()
	geom := f.Geometry()
	if limit := geom.ContentBottom() - geom.ContentTop(); maxHeight > limit {
		maxHeight = limit
	}
	width, height := FitBox(spec.Width, spec.Height, contentWidth, maxHeight)

	var caption TextBox
	captionHeight := 0.0
	if spec.Caption != "" {
		var err error
		caption, err = th.Compose(spec.Caption, contentWidth, th.Italic, th.CaptionSize, th.MetaColor, m)
		if err != nil {
			return err
		}
		caption.Align = "center"
		captionHeight = captionGap + caption.Height()
	}

	if !f.Reserve(height + captionHeight) {
		f.BreakPage()
		if !f.Reserve(height + captionHeight) {
			return fmt.Errorf("layout: 图片 %s 加说明超出整页高度", spec.Ref)
		}
	}

	f.AppendImage(ImageBox{
		Ref:    spec.Ref,
		X:      geom.Margin.Left + (contentWidth-width)/2,
		Y:      f.CursorY(),
		Width:  width,
		Height: height,
	})
	f.Advance(height)
	if spec.Caption != "" {
		f.Advance(captionGap)
		caption.X = geom.Margin.Left
		caption.Y = f.CursorY()
		f.AppendText(caption)
		f.Advance(caption.Height())
	}
	return nil
}
