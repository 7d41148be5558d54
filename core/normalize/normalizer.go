// Package normalize implements the Normalizer interface.
// It coerces the review flag and count columns to integers and drops rows
// whose reviewer id is too long, producing the table that is saved back.
package normalize

import (
	"github.com/gaurav-prasanna/reviewprep/core"
	"github.com/gaurav-prasanna/reviewprep/core/coerce"
)

// Default column names and limits of the review exports.
const (
	DefaultAnonymousColumn = "isAnonymous"
	DefaultLikeCountColumn = "likeCount"
	DefaultLikedColumn     = "isLiked"
	DefaultReviewerColumn  = "reviewerId"
	DefaultMaxReviewerLen  = 8
)

// Options configures a ReviewNormalizer. Zero fields take the defaults.
type Options struct {
	AnonymousColumn string
	LikeCountColumn string
	LikedColumn     string
	ReviewerColumn  string
	MaxReviewerLen  int
	StrictBool      bool // reject non-boolean flag values instead of mapping them to 1
}

// ReviewNormalizer applies the review column transforms in a fixed order:
// isAnonymous, likeCount, isLiked, then the reviewerId filter.
type ReviewNormalizer struct {
	opts Options
}

// New creates a ReviewNormalizer, filling unset options with defaults.
func New(opts Options) *ReviewNormalizer {
	if opts.AnonymousColumn == "" {
		opts.AnonymousColumn = DefaultAnonymousColumn
	}
	if opts.LikeCountColumn == "" {
		opts.LikeCountColumn = DefaultLikeCountColumn
	}
	if opts.LikedColumn == "" {
		opts.LikedColumn = DefaultLikedColumn
	}
	if opts.ReviewerColumn == "" {
		opts.ReviewerColumn = DefaultReviewerColumn
	}
	if opts.MaxReviewerLen <= 0 {
		opts.MaxReviewerLen = DefaultMaxReviewerLen
	}
	return &ReviewNormalizer{opts: opts}
}

// columns holds the resolved indexes of the touched columns.
type columns struct {
	anonymous, likeCount, liked, reviewer int
}

// Normalize returns a transformed copy of t. The input table is not modified,
// so a failure part-way leaves the caller's data intact.
func (n *ReviewNormalizer) Normalize(t *core.Table) (*core.Table, core.Stats, error) {
	stats := core.Stats{RowsIn: len(t.Rows)}

	// Resolve every column before touching any row.
	cols, err := n.resolve(t)
	if err != nil {
		return nil, stats, err
	}

	out := t.Clone()
	for i, row := range out.Rows {
		rowNum := i + 1

		nc, err := n.coerceBool(row, cols.anonymous, n.opts.AnonymousColumn, rowNum)
		if err != nil {
			return nil, stats, err
		}
		stats.NonCanonicalBools += nc

		count, err := coerce.Int(row[cols.likeCount])
		if err != nil {
			return nil, stats, conversionError(n.opts.LikeCountColumn, rowNum, row[cols.likeCount], err)
		}
		row[cols.likeCount] = coerce.FormatInt(count)

		nc, err = n.coerceBool(row, cols.liked, n.opts.LikedColumn, rowNum)
		if err != nil {
			return nil, stats, err
		}
		stats.NonCanonicalBools += nc
	}

	// An empty reviewer id counts as missing and the row is dropped.
	out = out.Filter(func(row []string) bool {
		id := row[cols.reviewer]
		return id != "" && coerce.Length(id) <= n.opts.MaxReviewerLen
	})

	stats.RowsOut = len(out.Rows)
	return out, stats, nil
}

func (n *ReviewNormalizer) resolve(t *core.Table) (columns, error) {
	var c columns
	var err error
	if c.anonymous, err = t.RequireColumn(n.opts.AnonymousColumn); err != nil {
		return c, err
	}
	if c.likeCount, err = t.RequireColumn(n.opts.LikeCountColumn); err != nil {
		return c, err
	}
	if c.liked, err = t.RequireColumn(n.opts.LikedColumn); err != nil {
		return c, err
	}
	if c.reviewer, err = t.RequireColumn(n.opts.ReviewerColumn); err != nil {
		return c, err
	}
	return c, nil
}

// coerceBool rewrites row[idx] in place and reports 1 if the value was
// non-canonical.
func (n *ReviewNormalizer) coerceBool(row []string, idx int, column string, rowNum int) (int, error) {
	v, canonical, err := coerce.Bool(row[idx], n.opts.StrictBool)
	if err != nil {
		return 0, conversionError(column, rowNum, row[idx], err)
	}
	row[idx] = coerce.FormatBool(v)
	if canonical {
		return 0, nil
	}
	return 1, nil
}

func conversionError(column string, row int, value string, err error) error {
	return &core.Error{
		Kind:   core.KindTypeConversion,
		Column: column,
		Row:    row,
		Value:  value,
		Err:    err,
	}
}
