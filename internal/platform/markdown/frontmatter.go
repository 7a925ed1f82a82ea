// Package markdown reads and writes notes with a YAML frontmatter header.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter returns the decoded header and the remaining body. A note
// without a header yields an empty map and the content unchanged.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, rest[idx+len("\n"+separator):], nil
}

// RenderFrontmatter encodes meta, a map or a yaml-tagged struct, above body.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// WriteNote renders the note and replaces path through a temp file in the
// same directory, so readers never see a half-written note.
func WriteNote(path string, meta any, body string) error {
	rendered, err := RenderFrontmatter(meta, body)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".note-*")
	if err != nil {
		return fmt.Errorf("create temp note: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(rendered); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write note %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close note %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod note %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace note %s: %w", filepath.Base(path), err)
	}
	return nil
}
