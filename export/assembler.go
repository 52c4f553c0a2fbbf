// Package export 把内存中的会话记录装配成分页布局并渲染为最终文档。
// 装配过程只产出几何与文本，测量与绘制都由注入的渲染后端完成。
package export

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ByLCY/vellum/content"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/session"
)

const (
	// imageMaxHeight 是单张图片在页面上的高度上限（mm）。
	imageMaxHeight = 90.0
	// sessionRuleGap 是会话头分隔线上下的间隔（mm）。
	sessionRuleGap = 1.5
	// continuedMark 提示文本片段在下一页继续。
	continuedMark = "continued…"

	timeLayout = "2006-01-02 15:04"
	topEps     = 1e-6
)

// builder 持有装配一次导出所需的全部状态。
type builder struct {
	flow  *layout.Flow
	theme layout.Theme
	m     layout.Measurer
	opts  Options

	images   map[string]session.Image
	warnings []Warning
}

// Build 把会话序列装配成分页布局。返回的警告记录被降级处理的内容
// （表格回退、图片跳过、文本清洗），布局本身总是完整的。
func Build(sessions []session.Session, images map[string]session.Image, opts Options, m layout.Measurer) (*layout.Result, []Warning, error) {
	if m == nil {
		return nil, nil, fmt.Errorf("export: 缺少文本测量后端")
	}
	opts = opts.withDefaults()
	if len(sessions) == 0 && !opts.AllowEmpty {
		return nil, nil, fmt.Errorf("export: 没有可导出的会话（AllowEmpty 可显式允许空导出）")
	}
	geom, err := opts.geometry()
	if err != nil {
		return nil, nil, err
	}

	theme := layout.DefaultTheme()
	docName := strings.TrimSuffix(opts.OutputName, filepath.Ext(opts.OutputName))
	b := &builder{
		flow:   layout.NewFlow(geom, theme, opts.FooterBranding, docName),
		theme:  theme,
		m:      m,
		opts:   opts,
		images: images,
	}

	for i := range sessions {
		if i > 0 {
			b.flow.BreakPage()
		}
		if err := b.session(sessions[i]); err != nil {
			return nil, nil, err
		}
	}

	meta := layout.DocumentMeta{Title: docName, Creator: "vellum"}
	if len(sessions) == 1 {
		meta.Subject = sessions[0].Title
	}
	return &layout.Result{Pages: b.flow.Finalize(), Meta: meta}, b.warnings, nil
}

func (b *builder) warnf(code WarningCode, format string, args ...any) {
	b.warnings = append(b.warnings, Warning{Code: code, Detail: fmt.Sprintf(format, args...)})
}

// session 写入一个会话：标题头、分隔线，随后逐条消息。
func (b *builder) session(s session.Session) error {
	if err := b.header(s); err != nil {
		return err
	}
	if len(s.Messages) == 0 {
		return b.placeholder("(no messages)")
	}
	for i := range s.Messages {
		if err := b.message(s.Messages[i]); err != nil {
			return err
		}
	}
	return nil
}

// header 写入会话标题、元信息行与分隔线。
func (b *builder) header(s session.Session) error {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = "Untitled session"
	}
	titleBox, err := b.compose(title, b.theme.Bold, b.theme.TitleSize, b.theme.TextColor)
	if err != nil {
		return err
	}

	meta := fmt.Sprintf("%d messages", len(s.Messages))
	if !s.CreatedAt.IsZero() {
		meta += " · created " + s.CreatedAt.Format(timeLayout)
	}
	if s.Tier != "" {
		meta += " · " + s.Tier
	}
	metaBox, err := b.compose(meta, b.theme.Body, b.theme.MetaSize, b.theme.MetaColor)
	if err != nil {
		return err
	}

	need := titleBox.Height() + metaBox.Height() + 2*sessionRuleGap
	if !b.flow.Reserve(need) {
		b.flow.BreakPage()
	}
	b.place(titleBox)
	b.place(metaBox)
	b.flow.Advance(sessionRuleGap)
	x := b.flow.Geometry().Margin.Left
	y := b.flow.CursorY()
	b.flow.AppendLine(layout.Line{
		X1: x, Y1: y,
		X2: x + b.flow.ContentWidth(), Y2: y,
		Color: b.theme.BorderColor,
		Width: 0.2,
	})
	b.flow.Advance(sessionRuleGap)
	b.flow.Spacing(layout.BlockSpacing)
	return nil
}

// placeholder 居中写入一行提示文字（空会话等场景）。
func (b *builder) placeholder(text string) error {
	box, err := b.compose(text, b.theme.Italic, b.theme.MetaSize, b.theme.MetaColor)
	if err != nil {
		return err
	}
	box.Align = "center"
	if !b.flow.Reserve(box.Height()) {
		b.flow.BreakPage()
	}
	b.place(box)
	return nil
}

// message 写入一条消息：内容块按原顺序排版，作者标签只出现在
// 首个片段上，后续片段换成 "(cont.)" 变体；可选的批注与图片跟在最后。
func (b *builder) message(msg session.Message) error {
	blocks := content.Classify(msg.Content)
	if len(blocks) == 0 {
		blocks = []content.Block{{Kind: content.TextBlock, Raw: ""}}
	}

	label := msg.Role.DisplayName()
	emitted := 0
	ts := ""
	if b.opts.IncludeTimestamps && !msg.Timestamp.IsZero() {
		ts = msg.Timestamp.Format(timeLayout)
	}

	for i, blk := range blocks {
		last := i == len(blocks)-1
		blockTS := ""
		if last {
			blockTS = ts
		}
		if i > 0 {
			b.flow.Spacing(layout.BlockSpacing)
		}
		switch blk.Kind {
		case content.TableBlock:
			grid, err := content.ParseGrid(blk.Raw)
			if err != nil {
				b.warnf(WarnTableFallback, "消息 %s 的表格按纯文本渲染：%v", msg.ID, err)
				if err := b.text(blk.Raw, b.theme.Body, label, &emitted, blockTS); err != nil {
					return err
				}
				continue
			}
			if emitted == 0 {
				if err := b.labelLine(label); err != nil {
					return err
				}
				emitted++
			}
			if err := layout.PlaceTable(b.flow, grid.Headers, grid.Rows, b.theme, b.m); err != nil {
				return err
			}
			if blockTS != "" {
				if err := b.timestampLine(blockTS); err != nil {
					return err
				}
			}
		default:
			if err := b.text(blk.Raw, b.theme.Body, label, &emitted, blockTS); err != nil {
				return err
			}
		}
	}

	if b.opts.IncludeAnnotations && strings.TrimSpace(msg.Annotation) != "" {
		b.flow.Spacing(layout.BlockSpacing)
		n := 0
		if err := b.text(msg.Annotation, b.theme.Italic, "Thinking", &n, ""); err != nil {
			return err
		}
	}
	if b.opts.IncludeImages && msg.ImageRef != "" {
		b.flow.Spacing(layout.BlockSpacing)
		if err := b.image(msg.ImageRef); err != nil {
			return err
		}
	}
	b.flow.Spacing(layout.BlockSpacing)
	return nil
}

// text 清洗并折行一段文本，然后按页剩余空间分片写入。
func (b *builder) text(raw string, font layout.FontResource, labelBase string, emitted *int, ts string) error {
	clean, replaced := layout.SanitizeText(raw)
	if replaced {
		b.warnf(WarnTextSanitized, "文本含不可测量字符，已替换为占位符：%.40q", raw)
	}
	lines, err := layout.WrapText(clean, b.flow.ContentWidth(), font, b.theme.BodySize, b.m)
	if err != nil {
		return err
	}
	return b.chunks(lines, font, labelBase, emitted, ts)
}

// chunks 把折好的行序列切成若干片段写入页面流。每个片段带标签行；
// 未收尾的片段以续页标记结束，收尾片段可附时间戳。片段至少
// MinChunkLines 行，除非整页都容纳不下。
func (b *builder) chunks(lines []layout.TextLine, font layout.FontResource, labelBase string, emitted *int, ts string) error {
	lh := b.theme.LineHeight(b.theme.BodySize)

	marker, err := b.compose(continuedMark, b.theme.Italic, b.theme.MetaSize, b.theme.MetaColor)
	if err != nil {
		return err
	}
	var tsBox layout.TextBox
	tsHeight := 0.0
	if ts != "" {
		tsBox, err = b.compose(ts, b.theme.Body, b.theme.MetaSize, b.theme.MetaColor)
		if err != nil {
			return err
		}
		tsBox.Align = "right"
		tsHeight = tsBox.Height()
	}

	idx := 0
	for idx < len(lines) {
		label := labelBase
		if *emitted > 0 {
			label += " (cont.)"
		}
		labelBox, err := b.compose(label, b.theme.Bold, b.theme.LabelSize, b.theme.TextColor)
		if err != nil {
			return err
		}

		rest := len(lines) - idx
		if b.flow.Reserve(labelBox.Height() + float64(rest)*lh + tsHeight) {
			b.place(labelBox)
			b.body(lines[idx:], font, lh)
			if ts != "" {
				b.place(tsBox)
			}
			*emitted++
			return nil
		}

		capacity := int((b.flow.Remaining() - labelBox.Height() - marker.Height()) / lh)
		if capacity < layout.MinChunkLines {
			if b.flow.CursorY() > b.flow.Geometry().ContentTop()+topEps {
				b.flow.BreakPage()
				continue
			}
			// 整页高度都放不下最小片段，硬塞能容纳的行数。
			if capacity < 1 {
				return fmt.Errorf("export: 页面高度放不下文本行（行高 %gmm）", lh)
			}
		}
		if capacity > rest {
			capacity = rest
		}
		b.place(labelBox)
		b.body(lines[idx:idx+capacity], font, lh)
		b.place(marker)
		*emitted++
		idx += capacity
		b.flow.BreakPage()
	}
	return nil
}

// labelLine 单独写入一行作者标签（表格等非文本块之前）。
func (b *builder) labelLine(label string) error {
	box, err := b.compose(label, b.theme.Bold, b.theme.LabelSize, b.theme.TextColor)
	if err != nil {
		return err
	}
	if !b.flow.Reserve(box.Height()) {
		b.flow.BreakPage()
	}
	b.place(box)
	return nil
}

// timestampLine 在块末尾写入右对齐的时间戳。
func (b *builder) timestampLine(ts string) error {
	box, err := b.compose(ts, b.theme.Body, b.theme.MetaSize, b.theme.MetaColor)
	if err != nil {
		return err
	}
	box.Align = "right"
	if !b.flow.Reserve(box.Height()) {
		b.flow.BreakPage()
	}
	b.place(box)
	return nil
}

// image 校验图片记录并排入页面流；数据缺失或无法解码时跳过并警告。
func (b *builder) image(ref string) error {
	img, ok := b.images[ref]
	if !ok || len(img.Data) == 0 {
		b.warnf(WarnImageSkipped, "图片 %s 没有对应的数据", ref)
		return nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		b.warnf(WarnImageSkipped, "图片 %s 解码失败：%v", ref, err)
		return nil
	}
	w, h := float64(img.Width), float64(img.Height)
	if w <= 0 || h <= 0 {
		w, h = float64(cfg.Width), float64(cfg.Height)
	}
	spec := layout.ImageSpec{Ref: ref, Width: w, Height: h, Caption: img.Caption}
	if err := layout.PlaceImage(b.flow, spec, imageMaxHeight, b.theme, b.m); err != nil {
		b.warnf(WarnImageSkipped, "图片 %s 无法排版：%v", ref, err)
	}
	return nil
}

// compose 在内容宽度内折行并组装文本框，X/Y 由 place 回填。
func (b *builder) compose(text string, font layout.FontResource, size float64, color layout.Color) (layout.TextBox, error) {
	return b.theme.Compose(text, b.flow.ContentWidth(), font, size, color, b.m)
}

// place 把文本框放到当前游标处并推进游标。调用方需已确认空间足够。
func (b *builder) place(box layout.TextBox) {
	box.X = b.flow.Geometry().Margin.Left
	box.Y = b.flow.CursorY()
	b.flow.AppendText(box)
	b.flow.Advance(box.Height())
}

// body 把一段已折行的正文写入当前游标处。
func (b *builder) body(lines []layout.TextLine, font layout.FontResource, lh float64) {
	box := layout.TextBox{
		X:          b.flow.Geometry().Margin.Left,
		Y:          b.flow.CursorY(),
		Width:      b.flow.ContentWidth(),
		LineHeight: lh,
		Font:       font,
		FontSize:   b.theme.BodySize,
		Color:      b.theme.TextColor,
		Lines:      lines,
	}
	b.flow.AppendText(box)
	b.flow.Advance(box.Height())
}
