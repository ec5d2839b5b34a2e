package scenes

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TestCoreImportsNoDriver 模拟核心与无窗口工具不依赖 ebiten
func TestCoreImportsNoDriver(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"组件", "../components"},
		{"配置", "../config"},
		{"对象池", "../pool"},
		{"会话数据", "../game"},
		{"系统", "../systems"},
		{"会话控制", "."},
		{"无窗口模拟工具", "../../cmd/headless"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(tt.dir, "*.go"))
			if err != nil {
				t.Fatal(err)
			}
			if len(files) == 0 {
				t.Fatalf("no Go files in %s", tt.dir)
			}
			for _, file := range files {
				if strings.HasSuffix(file, "_test.go") {
					continue
				}
				src, err := os.ReadFile(file)
				if err != nil {
					t.Fatal(err)
				}
				f, err := parser.ParseFile(token.NewFileSet(), file, src, parser.ImportsOnly)
				if err != nil {
					t.Fatalf("%s: %v", file, err)
				}
				for _, imp := range f.Imports {
					path, _ := strconv.Unquote(imp.Path.Value)
					if strings.HasPrefix(path, "github.com/hajimehoshi/ebiten") {
						t.Errorf("%s imports %s", file, path)
					}
				}
			}
		})
	}
}
