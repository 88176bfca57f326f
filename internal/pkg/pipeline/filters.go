package pipeline

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Fixed derived-view names. Batch output files are named after these.
const (
	FilterGrayscale = "grayscale"
	FilterEdges     = "edges"
	FilterBlur      = "blur"
	FilterBilateral = "bilateral"
)

const (
	cannyLowThreshold  = 100
	cannyHighThreshold = 200
	blurKernelSize     = 7
	bilateralDiameter  = 9
	bilateralSigma     = 75
)

// FilterNames returns the derived-view names in output order.
func FilterNames() []string {
	return []string{FilterGrayscale, FilterEdges, FilterBlur, FilterBilateral}
}

// ApplyFilters derives the fixed set of views from one buffer. Each
// filter works from the same input; there are no cross-filter
// dependencies. On any failure the partially built mats are released
// and an empty map is returned with the error, never a partial map.
func ApplyFilters(src gocv.Mat) (map[string]gocv.Mat, error) {
	if src.Empty() {
		return map[string]gocv.Mat{}, fmt.Errorf("filters: empty input buffer")
	}

	out := make(map[string]gocv.Mat, 4)

	gray := gocv.NewMat()
	if err := gocv.CvtColor(src, &gray, gocv.ColorBGRToGray); err != nil {
		gray.Close()
		return abortFilters(out, fmt.Errorf("filters: grayscale: %w", err))
	}
	out[FilterGrayscale] = gray

	edges := gocv.NewMat()
	gocv.Canny(src, &edges, cannyLowThreshold, cannyHighThreshold)
	if edges.Empty() {
		edges.Close()
		return abortFilters(out, fmt.Errorf("filters: edge detection produced empty buffer"))
	}
	out[FilterEdges] = edges

	blurred := gocv.NewMat()
	ksize := image.Point{X: blurKernelSize, Y: blurKernelSize}
	if err := gocv.GaussianBlur(src, &blurred, ksize, 0, 0, gocv.BorderDefault); err != nil {
		blurred.Close()
		return abortFilters(out, fmt.Errorf("filters: blur: %w", err))
	}
	out[FilterBlur] = blurred

	bilateral := gocv.NewMat()
	if err := gocv.BilateralFilter(src, &bilateral, bilateralDiameter, bilateralSigma, bilateralSigma); err != nil {
		bilateral.Close()
		return abortFilters(out, fmt.Errorf("filters: bilateral: %w", err))
	}
	out[FilterBilateral] = bilateral

	return out, nil
}

// CloseFilters releases every buffer in a filter map.
func CloseFilters(filters map[string]gocv.Mat) {
	for name := range filters {
		m := filters[name]
		m.Close()
	}
}

func abortFilters(out map[string]gocv.Mat, err error) (map[string]gocv.Mat, error) {
	CloseFilters(out)
	return map[string]gocv.Mat{}, err
}
