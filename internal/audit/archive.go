package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Archive keeps a copy of every uploaded quotes file.
type Archive struct {
	Dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{Dir: dir}
}

// SaveUpload writes the raw upload to a file with a random UUID name and
// returns the file name.
func (a *Archive) SaveUpload(data []byte) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	filename := uuid.New().String() + ".json"
	path := filepath.Join(a.Dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	log.Debug("Archived quotes upload", "path", path, "bytes", len(data))
	return filename, nil
}
