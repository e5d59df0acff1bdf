package contextcollector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mtakeda/plansh/internal/domain"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	return tmp
}

func TestCollectIncludesFiles(t *testing.T) {
	tmp := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(tmp, "file1.txt"), []byte("test"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := domain.Config{
		Context: domain.ContextSettings{IncludeFiles: true, MaxFiles: 5},
	}
	info, err := NewBasicCollector().Collect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(info.Files) != 1 || info.Files[0] != "file1.txt" {
		t.Fatalf("files = %v", info.Files)
	}
}

func TestCollectCapsFileCount(t *testing.T) {
	tmp := chdirTemp(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		if err := os.WriteFile(filepath.Join(tmp, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := domain.Config{
		Context: domain.ContextSettings{IncludeFiles: true, MaxFiles: 2},
	}
	info, err := NewBasicCollector().Collect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(info.Files) != 2 {
		t.Fatalf("files = %v, want 2 entries", info.Files)
	}
}

func TestCollectDetectsProjectType(t *testing.T) {
	tmp := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(tmp, "go.mod"), []byte("module x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := NewBasicCollector().Collect(context.Background(), domain.Config{})
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if info.ProjectType != "go" {
		t.Fatalf("project type = %q, want go", info.ProjectType)
	}
}

func TestFormatContextBlock(t *testing.T) {
	text := FormatContext(domain.ContextInfo{
		WorkingDir:  "/work",
		OS:          "linux",
		Shell:       "zsh",
		ProjectType: "go",
		HasGit:      true,
		GitBranch:   "main",
		GitDirty:    true,
		Files:       []string{"go.mod", "main.go"},
	})

	for _, want := range []string{
		"Directory: /work",
		"OS: linux",
		"Shell: zsh",
		"Project type: go",
		"Git: branch main (dirty)",
		"Files: go.mod, main.go",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}
