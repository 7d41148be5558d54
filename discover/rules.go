// Package discover maps regions to review file paths.
// Maps region identifiers to review file paths and back, and rejects
// identifiers that would escape the base directory.
package discover

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default filename template of the review exports: th_<region>_reviews.csv.
const (
	DefaultPrefix = "th_"
	DefaultSuffix = "_reviews.csv"
)

// Template builds review file paths from region identifiers.
type Template struct {
	BaseDir string
	Prefix  string
	Suffix  string
}

// Filename returns the bare file name for region.
func (t Template) Filename(region string) string {
	return t.Prefix + region + t.Suffix
}

// Path joins the base directory with the region's file name.
func (t Template) Path(region string) string {
	return filepath.Join(t.BaseDir, t.Filename(region))
}

// RegionFromFilename is the inverse of Filename. It reports false if name
// does not follow the template or carries an empty region.
func (t Template) RegionFromFilename(name string) (string, bool) {
	if !strings.HasPrefix(name, t.Prefix) || !strings.HasSuffix(name, t.Suffix) {
		return "", false
	}
	if len(name) <= len(t.Prefix)+len(t.Suffix) {
		return "", false
	}
	return name[len(t.Prefix) : len(name)-len(t.Suffix)], true
}

// ValidateRegion checks that region is usable inside a file name.
func ValidateRegion(region string) error {
	switch {
	case strings.TrimSpace(region) == "":
		return fmt.Errorf("region must not be empty")
	case strings.ContainsAny(region, `/\`):
		return fmt.Errorf("region %q must not contain path separators", region)
	case strings.Contains(region, ".."):
		return fmt.Errorf("region %q must not contain \"..\"", region)
	}
	return nil
}
