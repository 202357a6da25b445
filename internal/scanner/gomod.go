package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ErrNoModule is returned when no go.mod is found above a directory
var ErrNoModule = errors.New("go.mod file not found")

// FindGoMod searches for go.mod starting from dir and walking up
func FindGoMod(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, "go.mod")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoModule
		}
		current = parent
	}
}

// ModulePath returns the module path declared by the go.mod governing dir
func ModulePath(dir string) (string, error) {
	goMod, err := FindGoMod(dir)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(goMod)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	file, err := modfile.ParseLax(goMod, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if file.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", goMod)
	}
	return file.Module.Mod.Path, nil
}
