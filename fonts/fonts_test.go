package fonts

import "testing"

func TestLoadBuiltins(t *testing.T) {
	for _, name := range []string{"goregular", "gobold", "goitalic", "gomono"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("加载内置字体 %s 失败: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("内置字体 %s 为空", name)
		}
	}
}

func TestLoadStripsEmbedPrefix(t *testing.T) {
	a, err := Load("embed:goregular")
	if err != nil {
		t.Fatalf("带前缀加载失败: %v", err)
	}
	b, err := Load("goregular")
	if err != nil {
		t.Fatalf("不带前缀加载失败: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("前缀不应影响加载结果")
	}
}

func TestLoadUnknownFont(t *testing.T) {
	if _, err := Load("comic-sans"); err == nil {
		t.Fatalf("未知字体应报错")
	}
}
