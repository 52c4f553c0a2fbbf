package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// builtins 收录引擎自带的 TTF 字节数据，按名称索引。
var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，path 可写为 "embed:gobold" 或直接 "gobold"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "embed:")
	data, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败：未注册", name)
	}
	return data, nil
}
