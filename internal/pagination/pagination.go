package pagination

import (
	"fmt"
	"strings"
)

const DefaultLimit = 10

// Params carries the shared list-query knobs every resource accepts.
type Params struct {
	Page   int
	Limit  int
	Sort   string
	Search string
}

// Normalize coerces page and limit to positive values and applies the
// resource defaults. Limit is capped so a single request cannot drag the
// whole table.
func (p Params) Normalize(defaultLimit int, defaultSort string) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Sort == "" {
		p.Sort = defaultSort
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination envelope returned with every list.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewMeta computes the page count as ceil(total/limit). A page beyond the
// last one yields an empty item list with these same, correct totals.
func NewMeta(total int64, p Params) Meta {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: pages,
	}
}

// SearchClause builds a case-insensitive substring condition across the
// given columns, returning the SQL fragment and its argument. argIndex is
// the positional placeholder number to use. Empty search yields no clause.
func SearchClause(search string, columns []string, argIndex int) (string, string) {
	if search == "" || len(columns) == 0 {
		return "", ""
	}
	conds := make([]string, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, argIndex))
	}
	return "(" + strings.Join(conds, " OR ") + ")", "%" + search + "%"
}

// OrderBy maps a client sort key to a whitelisted column expression. Keys
// prefixed with '-' sort descending. Unknown keys fall back to the default.
func OrderBy(sort string, allowed map[string]string, fallback string) string {
	desc := strings.HasPrefix(sort, "-")
	key := strings.TrimPrefix(sort, "-")

	col, ok := allowed[key]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
