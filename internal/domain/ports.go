package domain

import "context"

// CorpusLoader loads a rule corpus. An empty path selects the loader's
// built-in default corpus.
type CorpusLoader interface {
	Load(path string) (*Corpus, error)
}

// TargetScanner enumerates the source files of a target tree that match the
// include globs and none of the exclude globs.
type TargetScanner interface {
	Scan(rootPath string, include, exclude []string) (*ScanResult, error)
}

// ScanResult holds the files selected for analysis, relative to the root.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Files    []string `json:"files"`
}

// SourceParser turns raw source into the structural form rules match on.
type SourceParser interface {
	Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error)
}

// ConfigLoader reads the optional project configuration from the target root.
type ConfigLoader interface {
	Load(rootPath string) (ProjectConfig, error)
}

// GitInfo exposes version-control metadata of the target tree.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// ScanHistory persists scan entries per target tree.
type ScanHistory interface {
	Save(rootPath string, entry ScanEntry) error
	Load(rootPath string) ([]ScanEntry, error)
}
