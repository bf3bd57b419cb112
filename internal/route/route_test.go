package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		wantPath string
		wantQS   string
	}{
		{raw: "/foods?search=pizza&cuisine=Italian", wantPath: Foods, wantQS: "cuisine=Italian&search=pizza"},
		{raw: "", wantPath: Home},
		{raw: "/nowhere?x=1", wantPath: Home, wantQS: "x=1"},
		{raw: "/activity", wantPath: Activity},
		{raw: "/cart", wantPath: Cart},
		{raw: "/foods?search=mac+%26+cheese", wantPath: Foods, wantQS: "search=mac+%26+cheese"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc := Parse(tt.raw)
			assert.Equal(t, tt.wantPath, loc.Path)
			assert.Equal(t, tt.wantQS, loc.QueryString())
		})
	}
}

func TestLocation_WithSetsAndDeletes(t *testing.T) {
	base := Parse("/foods?cuisine=Italian")

	withSearch := base.With(ParamSearch, "piz")
	assert.Equal(t, "/foods?cuisine=Italian&search=piz", withSearch.String())
	assert.Equal(t, "/foods?cuisine=Italian", base.String(), "With must not mutate the receiver")

	cleared := withSearch.With(ParamSearch, "")
	assert.Equal(t, "/foods?cuisine=Italian", cleared.String())
	assert.True(t, cleared.Equal(base))
}

func TestLocation_GetOnZeroValue(t *testing.T) {
	var loc Location
	assert.Equal(t, "", loc.Get(ParamSearch))
	assert.Equal(t, "/", loc.String())
	assert.Equal(t, "/foods?search=x", loc.WithPath(Foods).With(ParamSearch, "x").String())
}

func TestHistory_ReplaceDoesNotGrow(t *testing.T) {
	h := NewHistory(New(Home))
	h.Push(New(Foods))
	require.Equal(t, 2, h.Len())

	for _, term := range []string{"p", "pi", "piz"} {
		h.Replace(h.Current().With(ParamSearch, term))
	}
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/foods?search=piz", h.Current().String())

	prev, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, Home, prev.Path)

	_, ok = h.Back()
	assert.False(t, ok, "the root entry is never popped")
}

func TestHistory_PushSameLocationIsNoop(t *testing.T) {
	h := NewHistory(Parse("/foods?search=x"))
	h.Push(Parse("/foods?search=x"))
	assert.Equal(t, 1, h.Len())

	var zero History
	assert.Equal(t, Home, zero.Current().Path)
	zero.Replace(New(Cart))
	assert.Equal(t, Cart, zero.Current().Path)
}
