package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// newGradientMat builds a small BGR test image with enough local
// variation that every pipeline stage has something to act on.
func newGradientMat(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mat.SetUCharAt(y, x*3, uint8(x*255/cols))
			mat.SetUCharAt(y, x*3+1, uint8(y*255/rows))
			mat.SetUCharAt(y, x*3+2, uint8((x+y)*255/(rows+cols)))
		}
	}
	return mat
}

func TestEnhancePresets(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"lenient", Lenient()},
		{"baseline", Baseline()},
		{"aggressive", Aggressive()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newGradientMat(t, 48, 64)
			defer src.Close()

			out, err := Enhance(src, tt.params)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, src.Rows(), out.Rows())
			assert.Equal(t, src.Cols(), out.Cols())
			assert.Equal(t, 3, out.Channels())
		})
	}
}

func TestEnhanceLeavesSourceUntouched(t *testing.T) {
	src := newGradientMat(t, 32, 32)
	defer src.Close()

	before := src.Clone()
	defer before.Close()

	out, err := Enhance(src, Baseline())
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, before.ToBytes(), src.ToBytes())
}

func TestEnhanceDeterministic(t *testing.T) {
	src := newGradientMat(t, 32, 48)
	defer src.Close()

	first, err := Enhance(src, Baseline())
	require.NoError(t, err)
	defer first.Close()

	second, err := Enhance(src, Baseline())
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.ToBytes(), second.ToBytes())
}

func TestEnhanceRejectsBadInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	out, err := Enhance(empty, Baseline())
	assert.Error(t, err)
	assert.True(t, out.Empty())
	out.Close()

	gray := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC1)
	defer gray.Close()

	out, err = Enhance(gray, Baseline())
	assert.Error(t, err)
	assert.True(t, out.Empty())
	out.Close()
}

func TestByName(t *testing.T) {
	for _, name := range []string{"lenient", "baseline", "aggressive"} {
		p, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotZero(t, p.DenoiseStrength)
		assert.Equal(t, 7, p.DenoiseTemplateSize)
		assert.Equal(t, 21, p.DenoiseSearchSize)
	}

	_, err := ByName("extreme")
	assert.Error(t, err)
}

func TestPresetWeightsPreserveBrightness(t *testing.T) {
	for _, p := range []Params{Lenient(), Baseline(), Aggressive()} {
		assert.InDelta(t, 1.0, p.SharpenWeight+p.BlurWeight, 1e-9)
	}
}
