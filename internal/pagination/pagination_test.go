package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{
			name: "zero values pick defaults",
			in:   Params{},
			want: Params{Page: 1, Limit: 10, Sort: "-createdAt"},
		},
		{
			name: "negative page and limit coerced",
			in:   Params{Page: -3, Limit: -1},
			want: Params{Page: 1, Limit: 10, Sort: "-createdAt"},
		},
		{
			name: "limit capped",
			in:   Params{Page: 2, Limit: 10000},
			want: Params{Page: 2, Limit: 200, Sort: "-createdAt"},
		},
		{
			name: "explicit values kept",
			in:   Params{Page: 4, Limit: 25, Sort: "name", Search: " alice "},
			want: Params{Page: 4, Limit: 25, Sort: "name", Search: "alice"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize(0, "-createdAt"))
		})
	}
}

func TestNormalizeResourceDefaultLimit(t *testing.T) {
	got := Params{}.Normalize(50, "position")
	assert.Equal(t, 50, got.Limit)
	assert.Equal(t, "position", got.Sort)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Params{Page: 5, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		limit int
		pages int
	}{
		{"empty", 0, 10, 0},
		{"exact fit", 30, 10, 3},
		{"partial last page", 31, 10, 4},
		{"single item", 1, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewMeta(tc.total, Params{Page: 1, Limit: tc.limit})
			assert.Equal(t, tc.pages, meta.Pages)
			assert.Equal(t, tc.total, meta.Total)
		})
	}
}

func TestNewMetaPageBeyondLast(t *testing.T) {
	meta := NewMeta(12, Params{Page: 9, Limit: 10})
	assert.Equal(t, 9, meta.Page)
	assert.Equal(t, 2, meta.Pages)
}

func TestSearchClause(t *testing.T) {
	clause, arg := SearchClause("summer camp", []string{"title", "content"}, 3)
	assert.Equal(t, "(title ILIKE $3 OR content ILIKE $3)", clause)
	assert.Equal(t, "%summer camp%", arg)

	clause, arg = SearchClause("", []string{"title"}, 1)
	assert.Empty(t, clause)
	assert.Empty(t, arg)
}

func TestOrderBy(t *testing.T) {
	allowed := map[string]string{"createdAt": "created_at", "name": "name"}

	assert.Equal(t, "created_at ASC", OrderBy("createdAt", allowed, "created_at DESC"))
	assert.Equal(t, "created_at DESC", OrderBy("-createdAt", allowed, "created_at DESC"))
	assert.Equal(t, "name ASC", OrderBy("name", allowed, "created_at DESC"))
	// Unknown keys cannot reach the query.
	assert.Equal(t, "created_at DESC", OrderBy("password_hash", allowed, "created_at DESC"))
	assert.Equal(t, "created_at DESC", OrderBy("", allowed, "created_at DESC"))
}
