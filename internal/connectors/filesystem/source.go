// Package filesystem lists documents from a local directory.
package filesystem

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source enumerates the regular files directly inside one directory,
// including symlinks to regular files. Subdirectories are not descended.
type Source struct {
	rootPath   string
	extensions map[string]struct{}
}

// New creates a source for rootPath that keeps files with one of the given
// extensions. Extensions compare case-insensitively, with or without the
// leading dot. No extensions keeps every regular file.
func New(rootPath string, extensions ...string) *Source {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return &Source{rootPath: rootPath, extensions: exts}
}

// RootPath returns the listed directory.
func (s *Source) RootPath() string {
	return s.rootPath
}

// List returns the matching files sorted by filename.
func (s *Source) List(ctx context.Context) ([]domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.rootPath, err)
	}

	docs := make([]domain.RawDocument, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !s.isFile(entry) {
			logger.Debug("skipping %s: not a regular file", name)
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !s.keep(ext) {
			logger.Debug("skipping %s: extension not selected", name)
			continue
		}

		path := filepath.Join(s.rootPath, name)
		docs = append(docs, domain.RawDocument{
			URI:      "file://" + path,
			MIMEType: detectMIMEType(name),
			Metadata: map[string]any{
				"filename":  name,
				"extension": strings.TrimPrefix(ext, "."),
			},
		})
	}
	return docs, nil
}

// Load reads the file behind raw.URI into raw.Content.
func (s *Source) Load(ctx context.Context, raw *domain.RawDocument) error {
	if raw == nil {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(ResolvePath(raw.URI))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	raw.Content = content
	return nil
}

// isFile reports whether entry is a regular file, following symlinks.
// Broken links are not files.
func (s *Source) isFile(entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(s.rootPath, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func (s *Source) keep(ext string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	_, ok := s.extensions[ext]
	return ok
}

// fallbackMIMETypes covers extensions the mime package may not know.
var fallbackMIMETypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".pdf":      "application/pdf",
	".html":     "text/html",
	".htm":      "text/html",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// detectMIMEType maps a filename extension to a MIME type without parameters.
func detectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "text/plain"
	}
	if t, ok := fallbackMIMETypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.Index(t, ";"); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "application/octet-stream"
}
