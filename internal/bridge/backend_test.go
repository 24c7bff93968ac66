package bridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with some content in dir
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestSelectBackend_PrebuiltPreferred(t *testing.T) {
	dir := t.TempDir()
	prebuilt := writeFile(t, dir, prebuiltExecutableName())
	writeFile(t, dir, scriptName)

	// Interpreter deliberately bogus: a present prebuilt must win without
	// ever consulting it
	be, err := selectBackend(Config{HelperDir: dir, InterpreterPath: "/nonexistent/python9"})
	if err != nil {
		t.Fatalf("selectBackend() error = %v", err)
	}

	pb, ok := be.(*prebuiltBackend)
	if !ok {
		t.Fatalf("selectBackend() = %T, want *prebuiltBackend", be)
	}
	if pb.path != prebuilt {
		t.Errorf("backend path = %s, want %s", pb.path, prebuilt)
	}
}

func TestSelectBackend_ScriptWithAbsoluteInterpreter(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, scriptName)
	interpreter := writeFile(t, t.TempDir(), "python3")

	be, err := selectBackend(Config{HelperDir: dir, InterpreterPath: interpreter})
	if err != nil {
		t.Fatalf("selectBackend() error = %v", err)
	}

	sb, ok := be.(*scriptBackend)
	if !ok {
		t.Fatalf("selectBackend() = %T, want *scriptBackend", be)
	}
	if sb.interpreter != interpreter {
		t.Errorf("interpreter = %s, want %s", sb.interpreter, interpreter)
	}
	if sb.script != script {
		t.Errorf("script = %s, want %s", sb.script, script)
	}
}

func TestSelectBackend_InterpreterRelativeToWorkingDir(t *testing.T) {
	helperDir := t.TempDir()
	writeFile(t, helperDir, scriptName)

	workDir := t.TempDir()
	writeFile(t, workDir, "mypython")
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Chdir(%s) error = %v", workDir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("restore working dir: %v", err)
		}
	})

	be, err := selectBackend(Config{HelperDir: helperDir, InterpreterPath: "mypython"})
	if err != nil {
		t.Fatalf("selectBackend() error = %v", err)
	}

	sb, ok := be.(*scriptBackend)
	if !ok {
		t.Fatalf("selectBackend() = %T, want *scriptBackend", be)
	}
	if !filepath.IsAbs(sb.interpreter) {
		t.Errorf("interpreter = %s, want absolute path", sb.interpreter)
	}
}

func TestSelectBackend_StartupErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) Config
		want string
	}{
		{
			name: "empty helper dir",
			cfg:  func(t *testing.T) Config { return Config{} },
			want: "not configured",
		},
		{
			name: "no prebuilt and no interpreter",
			cfg:  func(t *testing.T) Config { return Config{HelperDir: t.TempDir()} },
			want: "no interpreter path",
		},
		{
			name: "interpreter unresolvable",
			cfg: func(t *testing.T) Config {
				dir := t.TempDir()
				writeFile(t, dir, scriptName)
				return Config{HelperDir: dir, InterpreterPath: "definitely-not-a-real-interpreter-name"}
			},
			want: "not found",
		},
		{
			name: "absolute interpreter missing",
			cfg: func(t *testing.T) Config {
				dir := t.TempDir()
				writeFile(t, dir, scriptName)
				return Config{HelperDir: dir, InterpreterPath: filepath.Join(t.TempDir(), "gone")}
			},
			want: "not found",
		},
		{
			name: "script missing",
			cfg: func(t *testing.T) Config {
				interpreter := writeFile(t, t.TempDir(), "python3")
				return Config{HelperDir: t.TempDir(), InterpreterPath: interpreter}
			},
			want: "helper script not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := selectBackend(tt.cfg(t))
			if err == nil {
				t.Fatal("selectBackend() error = nil, want startup error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("selectBackend() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}
