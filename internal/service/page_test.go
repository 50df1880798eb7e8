package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := newPage([]string{"a", "b", "c"}, 1, 23)

	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(23), p.TotalItems)
	assert.Equal(t, ItemsPerPage, p.PerPage)
	assert.Len(t, p.Items, 3)
}

func TestNewPage_ExactMultiple(t *testing.T) {
	p := newPage[string](nil, 2, 20)
	assert.Equal(t, 2, p.TotalPages)
}

func TestEmptyPage(t *testing.T) {
	p := emptyPage[int](7, 15)

	assert.Empty(t, p.Items)
	assert.Equal(t, 7, p.CurrentPage)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, int64(15), p.TotalItems)
}

func TestOffsetFor(t *testing.T) {
	assert.Equal(t, int64(0), offsetFor(1))
	assert.Equal(t, int64(10), offsetFor(2))
	assert.Equal(t, int64(40), offsetFor(5))
}
