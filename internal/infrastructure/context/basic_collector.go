// Package contextcollector probes the local environment (directory, project
// type, git state, shell) to give the model situational awareness.
package contextcollector

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/ports"
)

// projectMarkers maps a marker file to the project type it indicates, checked
// in a fixed order so detection is deterministic.
var projectMarkers = []struct {
	file string
	kind string
}{
	{"go.mod", "go"},
	{"package.json", "node"},
	{"Cargo.toml", "rust"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"pom.xml", "java"},
	{"Makefile", "make"},
}

// BasicCollector implements ports.ContextCollector with filesystem and git
// probing.
type BasicCollector struct{}

func NewBasicCollector() *BasicCollector {
	return &BasicCollector{}
}

// Collect gathers context data. Probe failures degrade to missing fields,
// never to an error: a broken git checkout should not block a query.
func (c *BasicCollector) Collect(ctx context.Context, cfg domain.Config) (domain.ContextInfo, error) {
	wd, _ := os.Getwd()
	shell, shellVersion := detectShell(ctx)

	info := domain.ContextInfo{
		WorkingDir:   wd,
		OS:           runtime.GOOS,
		Shell:        shell,
		ShellVersion: shellVersion,
		ProjectType:  detectProjectType(wd),
	}

	if cfg.Context.IncludeFiles {
		info.Files = listFiles(wd, cfg.MaxContextFiles())
	}
	if cfg.Context.IncludeGit {
		info.HasGit, info.GitBranch, info.GitDirty = collectGitInfo(ctx, wd)
	}

	return info, nil
}

// FormatContext renders collected context as the text block appended to the
// system prompt.
func FormatContext(info domain.ContextInfo) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Directory: %s", info.WorkingDir))
	if info.OS != "" {
		lines = append(lines, fmt.Sprintf("OS: %s", info.OS))
	}
	if info.Shell != "" {
		shell := info.Shell
		if info.ShellVersion != "" {
			shell += " " + info.ShellVersion
		}
		lines = append(lines, fmt.Sprintf("Shell: %s", shell))
	}
	if info.ProjectType != "" {
		lines = append(lines, fmt.Sprintf("Project type: %s", info.ProjectType))
	}
	if info.HasGit {
		state := "clean"
		if info.GitDirty {
			state = "dirty"
		}
		lines = append(lines, fmt.Sprintf("Git: branch %s (%s)", info.GitBranch, state))
	}
	if len(info.Files) > 0 {
		lines = append(lines, fmt.Sprintf("Files: %s", strings.Join(info.Files, ", ")))
	}
	return strings.Join(lines, "\n")
}

func listFiles(dir string, limit int) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if len(files) >= limit {
			break
		}
		files = append(files, entry.Name())
	}
	return files
}

func detectProjectType(dir string) string {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker.file)); err == nil {
			return marker.kind
		}
	}
	return ""
}

func detectShell(ctx context.Context) (name, version string) {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "", ""
	}
	name = filepath.Base(shellPath)

	out, err := exec.CommandContext(ctx, shellPath, "--version").Output()
	if err != nil {
		return name, ""
	}
	first := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	for _, tok := range strings.Fields(first) {
		if len(tok) > 0 && tok[0] >= '0' && tok[0] <= '9' {
			return name, tok
		}
	}
	return name, ""
}

func collectGitInfo(ctx context.Context, dir string) (has bool, branch string, dirty bool) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false, "", false
	}
	branch = strings.TrimSpace(string(out))

	status := exec.CommandContext(ctx, "git", "status", "--porcelain")
	status.Dir = dir
	if statusOut, err := status.Output(); err == nil {
		dirty = len(strings.TrimSpace(string(statusOut))) > 0
	}
	return true, branch, dirty
}

var _ ports.ContextCollector = (*BasicCollector)(nil)
