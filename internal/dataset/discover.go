package dataset

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pkg/errors"
)

var tensorFileRegexp = regexp.MustCompile(`^[A-Za-z0-9_]+\.t64$`)

// Discover returns sorted paths to tensor files beneath root.
func Discover(root string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if tensorFileRegexp.MatchString(d.Name()) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "discover tensor files")
	}
	sort.Strings(entries)
	return entries, nil
}
