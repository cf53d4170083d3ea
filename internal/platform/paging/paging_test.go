package paging

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNew_Clamp(t *testing.T) {
	m := New(20, 10, 7)
	assert.Equal(t, 3, m.Page)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 15, m.First)
	assert.Equal(t, 20, m.Last)

	lo, hi := m.Bounds()
	assert.Equal(t, 14, lo)
	assert.Equal(t, 20, hi)
}

func TestNew_Empty(t *testing.T) {
	m := New(0, 5, 20)
	assert.Equal(t, 1, m.Page)
	assert.Equal(t, 1, m.TotalPages)
	assert.Equal(t, 0, m.First)
	assert.Equal(t, 0, m.Last)

	lo, hi := m.Bounds()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}

func TestNew_PageBelowOne(t *testing.T) {
	m := New(41, -2, 20)
	assert.Equal(t, 1, m.Page)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 1, m.First)
	assert.Equal(t, 20, m.Last)
}

func TestWithLinks_Window(t *testing.T) {
	m := New(200, 5, 20).WithLinks("/pets", url.Values{"q": {"кот"}})

	var nums []int
	for _, p := range m.Pages {
		nums = append(nums, p.Num)
	}
	if diff := cmp.Diff([]int{2, 3, 4, 5, 6, 7, 8}, nums); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "/pets?page=4&q=%D0%BA%D0%BE%D1%82", m.PrevURL)
	assert.Equal(t, "/pets?page=6&q=%D0%BA%D0%BE%D1%82", m.NextURL)
	assert.Equal(t, "/pets?page=5&q=%D0%BA%D0%BE%D1%82", m.CurrentURL)
	assert.True(t, m.Pages[3].Current)
}

func TestWithLinks_Edges(t *testing.T) {
	m := New(3, 1, 20).WithLinks("/pets", nil)
	assert.Empty(t, m.PrevURL)
	assert.Empty(t, m.NextURL)
	assert.Len(t, m.Pages, 1)
	assert.Equal(t, "/pets?page=1", m.CurrentURL)
}

func TestWithLinks_SkipsEmptyFilters(t *testing.T) {
	m := New(3, 1, 20).WithLinks("/pets", url.Values{"q": {""}})
	assert.Equal(t, "/pets?page=1", m.CurrentURL)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 4, ParsePage("4"))
}
