package fs

import (
	"os"
	"time"
)

// OSRenamer implements ports.Renamer with os.Rename.
type OSRenamer struct{}

// NewOSRenamer creates a renamer operating on the local filesystem.
func NewOSRenamer() OSRenamer {
	return OSRenamer{}
}

// Rename renames oldPath to newPath in place.
func (OSRenamer) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// ModTime returns the modification time of path.
func ModTime(path string) (t time.Time, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return t, err
	}
	return info.ModTime(), nil
}
