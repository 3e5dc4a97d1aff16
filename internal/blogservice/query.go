package blogservice

import (
	"fmt"
	"strings"
)

const defaultLimit = 20

// sortColumns is the allow-list of sortable fields. Values are interpolated into SQL,
// so only columns named here may ever be sorted on.
var sortColumns = map[string]string{
	"createdAt":    "b.created_at",
	"created_at":   "b.created_at",
	"updatedAt":    "b.updated_at",
	"updated_at":   "b.updated_at",
	"read_count":   "b.read_count",
	"reading_time": "b.reading_time",
	"title":        "b.title",
}

// normalize applies pagination defaults and clamps page and limit to a minimum of 1.
func (f *ListFilters) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	switch {
	case f.Limit == 0:
		f.Limit = defaultLimit
	case f.Limit < 0:
		f.Limit = 1
	}
}

func (f ListFilters) offset() int {
	return (f.Page - 1) * f.Limit
}

// orderBy returns the ORDER BY clause for the list query. An unknown sort field falls
// back to newest first. With an explicit sort field the order is ascending unless
// order=desc was requested.
func (f ListFilters) orderBy() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		return "b.created_at DESC"
	}

	if f.Order == "desc" {
		return column + " DESC"
	}

	return column + " ASC"
}

// where builds the filter clause shared by the count and select queries. authorID
// restricts the result to a single author when non-zero; it is a hard filter, unlike
// the author-name post-filter applied after the query.
func (f ListFilters) where(authorID int64) (string, []any) {
	var clauses []string
	var args []any

	if authorID != 0 {
		args = append(args, authorID)
		clauses = append(clauses, fmt.Sprintf("b.author_id = $%d", len(args)))
	}

	if f.State != "" {
		args = append(args, f.State)
		clauses = append(clauses, fmt.Sprintf("b.state = $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(b.title ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(b.tags) AS tag WHERE tag ILIKE $%d))", n, n))
	}

	if len(clauses) == 0 {
		return "TRUE", args
	}

	return strings.Join(clauses, " AND "), args
}

// matchAuthorName reports whether the blog's author full name contains the needle,
// case-insensitively.
func matchAuthorName(blog *Blog, needle string) bool {
	fullName := strings.ToLower(blog.Author.FirstName + " " + blog.Author.LastName)
	return strings.Contains(fullName, strings.ToLower(needle))
}
