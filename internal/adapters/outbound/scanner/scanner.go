package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/embercheck/embercheck/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"dist":             true,
	"tmp":              true,
	"vendor":           true,
	"coverage":         true,
	".git":             true,
}

// FileScanner implements domain.TargetScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects the files under rootPath that match any include glob and no
// exclude glob. Paths in the result are slash-separated and root-relative,
// sorted for deterministic downstream ordering.
func (s *FileScanner) Scan(rootPath string, include, exclude []string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(absPath, path)
		rel = filepath.ToSlash(rel)

		if !matchesAny(include, rel) || matchesAny(exclude, rel) {
			return nil
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.Files)
	return result, nil
}

// matchesAny reports whether the relative path matches one of the globs.
func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		if matchGlob(g, rel) {
			return true
		}
	}
	return false
}

// matchGlob matches one slash-separated glob against a relative path.
// A leading "**/" matches any directory prefix, including none; path
// segments otherwise follow filepath.Match semantics. This covers the
// include/exclude shapes the tool documents without pulling in a full
// glob engine.
func matchGlob(pattern, rel string) bool {
	if after, ok := strings.CutPrefix(pattern, "**/"); ok {
		if matchSegments(after, rel) {
			return true
		}
		segs := strings.Split(rel, "/")
		for i := 1; i < len(segs); i++ {
			if matchSegments(after, strings.Join(segs[i:], "/")) {
				return true
			}
		}
		return false
	}
	return matchSegments(pattern, rel)
}

func matchSegments(pattern, rel string) bool {
	ok, err := filepath.Match(pattern, rel)
	return err == nil && ok
}
