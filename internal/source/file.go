package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File reads a list from disk. YAML files (.yaml, .yml) hold a sequence of
// scalars; any other file holds one item per non-empty line.
type File struct {
	Path     string
	MaxItems int
}

// NewFile validates path and returns a File source.
func NewFile(path string, maxItems int) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("source path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	return &File{Path: abs, MaxItems: maxItems}, nil
}

// Describe implements Source.
func (f *File) Describe() string {
	return f.Path
}

// IsYAML reports whether the file is parsed as YAML.
func (f *File) IsYAML() bool {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Fetch implements Source. A missing file is an empty list.
func (f *File) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read source: %w", err)
	}
	if f.IsYAML() {
		items, err := parseYAML(data)
		if err != nil {
			return nil, err
		}
		return keepLast(items, f.MaxItems), nil
	}
	return readLines(data, f.MaxItems)
}

func parseYAML(data []byte) ([]string, error) {
	var items []string
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse yaml source: %w", err)
	}
	return items, nil
}

// readLines keeps at most maxItems trailing non-empty lines using a ring
// buffer, so large files cost O(maxItems) memory.
func readLines(data []byte, maxItems int) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxItems <= 0 {
		var lines []string
		for scanner.Scan() {
			if line := strings.TrimRight(scanner.Text(), "\r"); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxItems)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxItems
		if count < maxItems {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	lines := make([]string, count)
	if count == maxItems {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxItems]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
