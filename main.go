package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/vellum/export"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/renderer"
	canvasrenderer "github.com/ByLCY/vellum/renderer/canvas"
	"github.com/ByLCY/vellum/session"
)

// inputDoc 是 CLI 的输入文件格式：会话列表加按引用名索引的图片记录。
type inputDoc struct {
	Sessions []session.Session        `json:"sessions"`
	Images   map[string]session.Image `json:"images,omitempty"`
}

func main() {
	input := flag.String("in", "examples/transcript.json", "会话 JSON 文件路径")
	output := flag.String("out", "output/transcript.pdf", "PDF 输出路径")
	size := flag.String("size", "A4", "纸张尺寸：A3/A4/A5/Letter/Legal")
	landscape := flag.Bool("landscape", false, "横向页面")
	margin := flag.String("margin", "", "边距覆写（mm），逗号分隔 1、2 或 4 个值")
	images := flag.Bool("images", true, "渲染消息附带的图片")
	annotations := flag.Bool("annotations", false, "渲染消息批注")
	timestamps := flag.Bool("timestamps", true, "标注消息时间戳")
	branding := flag.String("branding", "", "页脚模板，支持 ${page} 与 ${name}")
	allowEmpty := flag.Bool("allow-empty", false, "允许零会话导出")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	margins, err := parseMargins(*margin)
	if err != nil {
		log.Fatalf("解析边距失败: %v", err)
	}
	opts := export.Options{
		PageSize:           *size,
		Landscape:          *landscape,
		Margins:            margins,
		IncludeImages:      *images,
		IncludeAnnotations: *annotations,
		IncludeTimestamps:  *timestamps,
		OutputName:         filepath.Base(*output),
		FooterBranding:     *branding,
		AllowEmpty:         *allowEmpty,
	}

	if err := run(*input, *output, *debug, opts); err != nil {
		log.Fatalf("导出失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联读取、装配与渲染。
func run(inputPath, outputPath, debugPath string, opts export.Options) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("无法读取会话文件 %s: %w", inputPath, err)
	}
	var doc inputDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析会话 JSON 失败: %w", err)
	}

	blobs := make(map[string][]byte, len(doc.Images))
	for name, img := range doc.Images {
		if len(img.Data) > 0 {
			blobs[name] = img.Data
		}
	}
	var r renderer.Renderer = canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Images: blobs})

	if debugPath != "" {
		m, ok := r.(layout.Measurer)
		if !ok {
			return fmt.Errorf("renderer 未实现测量接口")
		}
		result, _, err := export.Build(doc.Sessions, doc.Images, opts, m)
		if err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	docOut, err := export.Export(doc.Sessions, doc.Images, opts, r)
	if err != nil {
		return err
	}
	for _, w := range docOut.Warnings {
		log.Printf("警告 [%s]: %s", w.Code, w.Detail)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, docOut.Bytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// parseMargins 解析逗号分隔的边距覆写；空串返回 nil 表示用默认值。
func parseMargins(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("非法的边距值 %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
