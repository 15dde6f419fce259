package lead

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File pairs a parsed lead with its on-disk source.
type File struct {
	Lead Context
	Path string
}

// leadDocument models one lead YAML file.
type leadDocument struct {
	ItemID        string         `yaml:"item_id"`
	LeadType      string         `yaml:"lead_type"`
	OwnerOccupied string         `yaml:"owner_occupied"`
	Intelligence  map[string]any `yaml:"intelligence"`
}

// ParseYAML decodes and validates a single lead payload.
func ParseYAML(data []byte) (Context, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Context{}, fmt.Errorf("lead: payload is empty")
	}
	var doc leadDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Context{}, fmt.Errorf("lead: decode lead: %w", err)
	}
	ctx := Context{
		ItemID:       strings.TrimSpace(doc.ItemID),
		LeadType:     strings.TrimSpace(doc.LeadType),
		Occupancy:    ParseOccupancy(doc.OwnerOccupied),
		Intelligence: Intelligence(doc.Intelligence),
	}
	if ctx.ItemID == "" {
		return Context{}, fmt.Errorf("lead: item_id is required")
	}
	return ctx, nil
}

// LoadFile reads a YAML lead file from disk.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("lead: read %s: %w", path, err)
	}
	ctx, err := ParseYAML(data)
	if err != nil {
		return File{}, fmt.Errorf("lead: %s: %w", path, err)
	}
	return File{Lead: ctx, Path: filepath.Clean(path)}, nil
}

// LoadDir scans a directory for *.yaml lead files. A missing directory is
// treated as "no leads" to simplify startup.
func LoadDir(dir string) ([]File, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("lead: read %s: %w", trimmed, err)
	}
	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		file, err := LoadFile(filepath.Join(trimmed, name))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
