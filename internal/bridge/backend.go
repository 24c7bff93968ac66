package bridge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const (
	// prebuiltName is the platform-independent base name of the prebuilt helper
	prebuiltName = "escl-helper"

	// scriptName is the entry-point script of the interpreted helper
	scriptName = "escl_helper.py"
)

// Config selects and locates the discovery helper
type Config struct {
	// HelperDir is the directory holding the helper executable or script
	HelperDir string

	// InterpreterPath is the interpreter used to run the helper script
	// when no prebuilt executable exists. May be an absolute path, a name
	// resolvable via the process search path, or a path relative to the
	// working directory.
	InterpreterPath string
}

// backend is one of the two ways the helper can be launched.
// The variant is resolved once at bridge construction and never re-probed.
type backend interface {
	// start launches the helper process under the given context
	start(ctx context.Context) *exec.Cmd

	// String describes the backend for logging
	String() string
}

// prebuiltBackend runs a self-contained helper executable
type prebuiltBackend struct {
	path string
}

func (b *prebuiltBackend) start(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, b.path)
}

func (b *prebuiltBackend) String() string {
	return fmt.Sprintf("prebuilt executable %s", b.path)
}

// scriptBackend runs the helper script through an interpreter
type scriptBackend struct {
	interpreter string
	script      string
}

func (b *scriptBackend) start(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, b.interpreter, b.script)
}

func (b *scriptBackend) String() string {
	return fmt.Sprintf("script %s via %s", b.script, b.interpreter)
}

// prebuiltExecutableName returns the platform-specific helper binary name
func prebuiltExecutableName() string {
	if runtime.GOOS == "windows" {
		return prebuiltName + ".exe"
	}
	return prebuiltName
}

// selectBackend resolves the helper backend from the configuration.
// The prebuilt executable wins when it exists on disk; otherwise the
// interpreter path is required and must resolve. Failure here is a
// startup error, not a discovery error.
func selectBackend(cfg Config) (backend, error) {
	if cfg.HelperDir == "" {
		return nil, fmt.Errorf("discovery helper directory is not configured")
	}

	prebuilt := filepath.Join(cfg.HelperDir, prebuiltExecutableName())
	if info, err := os.Stat(prebuilt); err == nil && !info.IsDir() {
		return &prebuiltBackend{path: prebuilt}, nil
	}

	if cfg.InterpreterPath == "" {
		return nil, fmt.Errorf("no prebuilt helper at %s and no interpreter path configured", prebuilt)
	}

	interpreter, err := resolveInterpreter(cfg.InterpreterPath)
	if err != nil {
		return nil, err
	}

	script := filepath.Join(cfg.HelperDir, scriptName)
	if info, err := os.Stat(script); err != nil || info.IsDir() {
		return nil, fmt.Errorf("helper script not found at %s", script)
	}

	return &scriptBackend{interpreter: interpreter, script: script}, nil
}

// resolveInterpreter validates the interpreter location: absolute paths must
// exist, names are looked up on the process search path, and anything else
// is tried relative to the working directory.
func resolveInterpreter(path string) (string, error) {
	if filepath.IsAbs(path) {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return "", fmt.Errorf("interpreter not found at %s", path)
		}
		return path, nil
	}

	if resolved, err := exec.LookPath(path); err == nil {
		return resolved, nil
	}

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot resolve interpreter path %s: %w", path, err)
		}
		return abs, nil
	}

	return "", fmt.Errorf("interpreter %q not found on PATH or relative to the working directory", path)
}
