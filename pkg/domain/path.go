package domain

import (
	"path/filepath"
	"strings"
)

// PathKind classifies a path string as a directory or a file.
type PathKind int

const (
	// KindDirectory marks a path whose final component has no suffix.
	KindDirectory PathKind = iota
	// KindFile marks a path whose final component has a suffix.
	KindFile
)

func (k PathKind) String() string {
	if k == KindFile {
		return "file"
	}
	return "directory"
}

// Suffix returns the extension of the final path component, including the dot.
//
// A component only has a suffix when its last dot is neither its first nor its
// last character, so ".gitkeep", "Dockerfile" and "archive." have none while
// "config.yaml" and "model.tar.gz" do (".yaml", ".gz").
func Suffix(path string) string {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// HasTrailingSeparator reports whether path ends with a path separator.
func HasTrailingSeparator(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
}

// ClassifyPath returns KindFile for paths with a suffix and KindDirectory otherwise.
// A trailing separator always yields KindDirectory.
func ClassifyPath(path string) PathKind {
	if HasTrailingSeparator(path) {
		return KindDirectory
	}
	if Suffix(path) != "" {
		return KindFile
	}
	return KindDirectory
}
