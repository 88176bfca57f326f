package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestApplyFilters(t *testing.T) {
	src := newGradientMat(t, 40, 40)
	defer src.Close()

	filters, err := ApplyFilters(src)
	require.NoError(t, err)
	defer CloseFilters(filters)

	require.Len(t, filters, 4)
	for _, name := range FilterNames() {
		mat, ok := filters[name]
		require.True(t, ok, name)
		assert.False(t, mat.Empty(), name)
		assert.Equal(t, src.Rows(), mat.Rows(), name)
		assert.Equal(t, src.Cols(), mat.Cols(), name)
	}

	assert.Equal(t, 1, filters[FilterGrayscale].Channels())
	assert.Equal(t, 1, filters[FilterEdges].Channels())
	assert.Equal(t, 3, filters[FilterBlur].Channels())
	assert.Equal(t, 3, filters[FilterBilateral].Channels())
}

func TestApplyFiltersEmptyInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	filters, err := ApplyFilters(empty)
	assert.Error(t, err)
	assert.Empty(t, filters)
}

func TestFilterNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"grayscale", "edges", "blur", "bilateral"}, FilterNames())
}
