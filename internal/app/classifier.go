package app

import (
	"path/filepath"
	"strings"

	"github.com/bft-labs/labelwatch/internal/domain"
)

// Classify derives the print group of a file from its base name.
// The prefix before the first occurrence of separator is the group key;
// names without the separator are ungrouped. The separator is matched
// literally.
func Classify(name, separator string) domain.GroupKey {
	if separator == "" {
		return domain.Ungrouped
	}
	prefix, _, found := strings.Cut(filepath.Base(name), separator)
	if !found {
		return domain.Ungrouped
	}
	return domain.Group(prefix)
}

// MatchesExtension reports whether path ends in ext, ignoring case.
func MatchesExtension(path, ext string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), strings.ToLower(ext))
}
