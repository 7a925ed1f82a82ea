package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "studyhub/internal/modules/"

// walkImports calls check for every studyhub import of every non-test file under root.
func walkImports(t *testing.T, root string, check func(path, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, "studyhub/") {
				check(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(path, importPath string) {
		module := moduleName(path)
		layer := detectLayer(path)
		if module == "" || layer == "" || !strings.HasPrefix(importPath, modulesPrefix) {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", path, layer, importPath)
		}
	})
}

func TestPlatformStaysBelowModules(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "platform"), func(path, importPath string) {
		if !strings.HasPrefix(importPath, "studyhub/internal/platform/") {
			t.Errorf("platform package %s imports %s", path, importPath)
		}
	})
}

func TestUIUsesInboundSurfacesOnly(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "ui"), func(path, importPath string) {
		if !strings.HasPrefix(importPath, modulesPrefix) {
			return
		}
		if !isPortIn(importPath) && !isDTO(importPath) && !strings.Contains(importPath, "/adapter/in") {
			t.Errorf("ui package %s reaches into %s", path, importPath)
		}
	})
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

// Other modules are reachable through their port/in and dto only. Within a
// module, domain depends on nothing but itself.
func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.HasPrefix(importPath, modulesPrefix+module+"/")
	if !sameModule {
		return (!isPortIn(importPath) && !isDTO(importPath)) || layer == "domain"
	}

	switch layer {
	case "domain":
		return !strings.HasSuffix(importPath, "/domain")
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	default:
		return false
	}
}
