package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Store is the media-file backend. Save persists the bytes under name and
// returns the public URL clients use to fetch them. Remove is idempotent:
// removing a name that no longer exists is not an error.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, name string) error
}

// FileName derives the stored name for an upload: millisecond timestamp
// prefix plus the original name with whitespace collapsed to underscores.
// The prefix keeps concurrent uploads of the same file from colliding.
// Client filenames can carry path separators (browsers and tools differ on
// what they send), so only the base name survives; a name that still nests
// would make the returned public URL point past the media directory.
func FileName(original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	name := strings.Join(strings.Fields(base), "_")
	name = strings.Trim(name, ".")
	if name == "" || name == "/" {
		name = "file"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
}
