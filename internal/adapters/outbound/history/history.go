package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/embercheck/embercheck/internal/domain"
)

const historyFile = ".embercheck/history/scans.json"

// maxEntries bounds the retained history per target; older scans roll off.
const maxEntries = 50

// FileHistory implements domain.ScanHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(rootPath string, entry domain.ScanEntry) error {
	entries, err := h.Load(rootPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	fp := filepath.Join(rootPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(rootPath string) ([]domain.ScanEntry, error) {
	fp := filepath.Join(rootPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ScanEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
