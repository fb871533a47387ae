// Package discovery finds Terraform resource and module declarations under a directory.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tfocus/internal/domain"
)

// alwaysSkipped directories never hold configuration the operator edits
var alwaysSkipped = []string{".terraform", ".git"}

// Options controls the walk
type Options struct {
	MaxDepth int // 0 means unlimited
	SkipDirs []string
}

// Result is everything one scan found
type Result struct {
	Root      string
	Files     []string // every .tf file, sorted
	Resources []domain.Resource
}

// Scanner walks a directory tree for .tf files
type Scanner struct {
	opts   Options
	skip   map[string]bool
	logger *zap.Logger
}

// NewScanner creates a scanner. A nil logger disables logging.
func NewScanner(opts Options, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	skip := make(map[string]bool, len(alwaysSkipped)+len(opts.SkipDirs))
	for _, d := range alwaysSkipped {
		skip[d] = true
	}
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}
	return &Scanner{opts: opts, skip: skip, logger: logger}
}

// Scan walks root and parses every .tf file found. It returns domain.ErrNoResources
// alongside the result when no block was found.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	res := &Result{Root: root}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			s.logger.Debug("walk error", zap.String("path", path), zap.Error(err))
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if s.skip[d.Name()] {
				return filepath.SkipDir
			}
			if s.opts.MaxDepth > 0 {
				rel, _ := filepath.Rel(root, path)
				if strings.Count(rel, string(filepath.Separator))+1 > s.opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if filepath.Ext(path) == ".tf" {
			res.Files = append(res.Files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(res.Files)

	seen := make(map[string]bool)
	for _, file := range res.Files {
		content, err := os.ReadFile(file)
		if err != nil {
			s.logger.Warn("failed to read terraform file", zap.String("file", file), zap.Error(err))
			continue
		}
		for _, r := range Parse(file, content) {
			key := r.Address() + "\x00" + r.File
			if seen[key] {
				continue
			}
			seen[key] = true
			res.Resources = append(res.Resources, r)
		}
	}
	SortResources(res.Resources)

	s.logger.Info("scan complete",
		zap.String("root", root),
		zap.Int("files", len(res.Files)),
		zap.Int("resources", len(res.Resources)))

	if len(res.Resources) == 0 {
		return res, domain.ErrNoResources
	}
	return res, nil
}

// SortResources orders modules first, then by address, then by file
func SortResources(rs []domain.Resource) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.IsModule != b.IsModule {
			return a.IsModule
		}
		if a.Address() != b.Address() {
			return a.Address() < b.Address()
		}
		return a.File < b.File
	})
}

// RelPath returns file relative to root, or file unchanged if that fails
func RelPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return rel
}

// Candidates maps resources to menu rows in the same order
func Candidates(root string, resources []domain.Resource) domain.CandidateSet {
	set := make(domain.CandidateSet, len(resources))
	for i, r := range resources {
		detail := RelPath(root, r.File)
		switch {
		case r.HasCount:
			detail += " [count]"
		case r.HasForEach:
			detail += " [for_each]"
		}
		set[i] = domain.Candidate{Identifier: r.Address(), Label: r.Address(), Detail: detail}
	}
	return set
}

// Files lists the unique files declaring resources, sorted
func Files(resources []domain.Resource) []string {
	seen := make(map[string]bool)
	var files []string
	for _, r := range resources {
		if !seen[r.File] {
			seen[r.File] = true
			files = append(files, r.File)
		}
	}
	sort.Strings(files)
	return files
}
