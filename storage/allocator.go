package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEmptyFilename is returned when sanitization leaves nothing usable of the
// client-supplied name.
var ErrEmptyFilename = errors.New("empty filename after sanitization")

// Placement describes where an upload landed.
type Placement struct {
	// Filename is the resolved name inside the user's directory, including
	// any " (n)" collision suffix.
	Filename string
	// Path is the full storage path for the registry record.
	Path string
	// Version is the collision counter that was used: 0 for the plain name,
	// n for "base (n)ext".
	Version int
}

// Allocator maps (user id, requested filename) to a non-colliding path under
// a per-user directory below Root.
type Allocator struct {
	Root string
}

func NewAllocator(root string) *Allocator {
	return &Allocator{Root: root}
}

// Allocate sanitizes the requested filename, ensures the user's directory
// exists and creates the first free file slot for it. Creation uses
// O_CREATE|O_EXCL so two concurrent uploads of the same name can never claim
// the same path; the loser of the race simply moves on to the next suffix.
// The caller owns the returned handle and must close it (and remove the file
// if the rest of the upload fails).
func (a *Allocator) Allocate(userID uint, filename string) (*os.File, Placement, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return nil, Placement{}, ErrEmptyFilename
	}

	userDir := filepath.Join(a.Root, strconv.FormatUint(uint64(userID), 10))
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, Placement{}, fmt.Errorf("failed to create user directory: %w", err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for version := 0; ; version++ {
		candidate := name
		if version > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", base, version, ext)
		}

		path := filepath.Join(userDir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, Placement{Filename: candidate, Path: path, Version: version}, nil
		}
		if !os.IsExist(err) {
			return nil, Placement{}, fmt.Errorf("failed to create file: %w", err)
		}
	}
}

// SanitizeFilename reduces an untrusted client filename to a safe relative
// name: directory components are stripped, anything outside letters, digits,
// dot, dash and underscore becomes an underscore, and leading/trailing dots,
// underscores and spaces are trimmed. An unusable input maps to "".
func SanitizeFilename(name string) string {
	// Strip directory components for either separator convention.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ' || r == '(' || r == ')':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return strings.Trim(b.String(), "._ ")
}
