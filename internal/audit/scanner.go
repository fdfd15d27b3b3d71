package audit

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"docgaps/internal/parser"
)

// Scanner walks directory trees for Python files and extracts their
// undocumented functions.
type Scanner struct {
	parser       *parser.Parser
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func NewScanner(p *parser.Parser, excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{parser: p}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", pattern, err)
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}

	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", pattern, err)
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	return s, nil
}

// ScanDirectories returns every candidate file under roots in a stable
// sorted order. A root that is itself a file is accepted directly.
func (s *Scanner) ScanDirectories(roots []string) ([]string, error) {
	var files []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if s.parser.IsSupportedPath(root) && !s.matchFile(root) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range s.excludeDirs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !s.parser.IsSupportedPath(path) || s.matchFile(path) {
				return nil
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// Scan builds the registry for roots. Files that fail to parse yield zero
// targets and the scan continues; parse failures are counted, not raised.
func (s *Scanner) Scan(roots []string) (*Registry, error) {
	files, err := s.ScanDirectories(roots)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read file", "path", path, "error", err)
			reg.ParseFailures++
			continue
		}

		targets, err := s.parser.ParseFile(path, content)
		if err != nil {
			if errors.Is(err, parser.ErrSyntax) {
				slog.Debug("skipping unparsable file", "path", path)
			} else {
				slog.Warn("failed to parse file", "path", path, "error", err)
			}
			reg.ParseFailures++
			continue
		}

		reg.FileCount++
		reg.Targets = append(reg.Targets, targets...)
	}

	return reg, nil
}

func (s *Scanner) matchFile(path string) bool {
	base := filepath.Base(path)
	for _, g := range s.excludeFiles {
		if g.Match(base) {
			return true
		}
	}
	return false
}
