package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int64
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"割り切れる場合", 1, 20, 100, 5, true, false},
		{"端数は切り上げ", 1, 20, 101, 6, true, false},
		{"最終ページ", 5, 20, 100, 5, false, true},
		{"中間ページ", 3, 20, 100, 5, true, true},
		{"0件", 1, 20, 0, 0, false, false},
		{"1件", 1, 20, 1, 1, false, false},
		{"limit と同数", 1, 20, 20, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := New(Params{Page: tt.page, Limit: tt.limit}, tt.totalItems)
			assert.Equal(t, tt.wantPages, pg.TotalPages)
			assert.Equal(t, tt.totalItems, pg.TotalItems)
			assert.Equal(t, tt.page, pg.CurrentPage)
			assert.Equal(t, tt.limit, pg.ItemsPerPage)
			assert.Equal(t, tt.wantNext, pg.HasNext)
			assert.Equal(t, tt.wantPrev, pg.HasPrev)
		})
	}
}

// total_pages == ceil(total_items / items_per_page) が常に成り立つ
func TestNew_CeilInvariant(t *testing.T) {
	for limit := 1; limit <= 25; limit++ {
		for total := int64(0); total <= 120; total++ {
			pg := New(Params{Page: 1, Limit: limit}, total)
			want := int((total + int64(limit) - 1) / int64(limit))
			assert.Equal(t, want, pg.TotalPages, "limit=%d total=%d", limit, total)
		}
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 500, Params{Page: 6, Limit: 100}.Offset())
}

// 全ページのウィンドウを連結すると全件をちょうど一度ずつ覆う
func TestPagesCoverAllRowsExactlyOnce(t *testing.T) {
	const totalItems = 47
	const limit = 10

	seen := make(map[int]int)
	pg := New(Params{Page: 1, Limit: limit}, totalItems)
	for page := 1; page <= pg.TotalPages; page++ {
		p := Params{Page: page, Limit: limit}
		for i := p.Offset(); i < p.Offset()+limit && i < totalItems; i++ {
			seen[i]++
		}
	}

	assert.Len(t, seen, totalItems)
	for i, n := range seen {
		assert.Equal(t, 1, n, "row %d", i)
	}
}
