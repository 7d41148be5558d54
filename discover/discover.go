// Package discover finds the regions to process.
// Regions come either from an explicit list or from the review files
// already present in the base directory.
package discover

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Discover lists the regions that have a review file in t.BaseDir,
// sorted lexically. Subdirectories are not searched.
func Discover(fs afero.Fs, t Template) ([]string, error) {
	info, err := fs.Stat(t.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("reading base directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base directory %s is not a directory", t.BaseDir)
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(fs, t.BaseDir))
	pattern := escapeMeta(t.Prefix) + "*" + escapeMeta(t.Suffix)

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	sort.Strings(matches)

	set := NewSet()
	for _, name := range matches {
		region, ok := t.RegionFromFilename(name)
		if !ok || ValidateRegion(region) != nil {
			continue
		}
		set.Add(region)
	}
	return set.All(), nil
}

// escapeMeta quotes glob metacharacters so prefix and suffix match literally.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if strings.ContainsRune(`*?[]{}\`, ch) {
			b.WriteRune('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}
