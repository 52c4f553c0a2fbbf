package export

// WarningCode 标识一类降级继续（degraded-continue）的诊断。
type WarningCode string

const (
	// WarnTableFallback 表格块无法解析成矩形网格，已按纯文本渲染。
	WarnTableFallback WarningCode = "table-fallback"
	// WarnImageSkipped 图片数据缺失或无法解码，连同说明一起跳过。
	WarnImageSkipped WarningCode = "image-skipped"
	// WarnTextSanitized 文本含无法测量的字符，已替换为占位符。
	WarnTextSanitized WarningCode = "text-sanitized"
)

// Warning 是一条非致命诊断，随成功结果一并返回，从不中断导出。
type Warning struct {
	Code   WarningCode `json:"code"`
	Detail string      `json:"detail"`
}
