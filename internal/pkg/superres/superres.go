// Package superres upscales images 4x with a pre-trained ESPCN
// TensorFlow graph through OpenCV's dnn module.
package superres

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

const upscaleFactor = 4

// Upscaler loads the model fresh on every invocation, so a single
// value can be shared without synchronization. The model file is the
// only external resource any pipeline stage depends on.
type Upscaler struct {
	ModelPath string
}

func NewUpscaler(modelPath string) *Upscaler {
	return &Upscaler{ModelPath: modelPath}
}

// Upscale returns a new buffer with 4x the input dimensions. ESPCN
// reconstructs the luminance channel; chroma is bicubic-interpolated
// to match, then the planes are recombined. A missing or unloadable
// model yields an error; callers degrade to the unmodified input.
func (u *Upscaler) Upscale(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() || src.Channels() != 3 {
		return gocv.NewMat(), errors.New("superres: invalid input buffer")
	}
	if _, err := os.Stat(u.ModelPath); err != nil {
		return gocv.NewMat(), fmt.Errorf("superres: model unavailable: %w", err)
	}

	net := gocv.ReadNet(u.ModelPath, "")
	if net.Empty() {
		return gocv.NewMat(), fmt.Errorf("superres: cannot load model %s", u.ModelPath)
	}
	defer net.Close()

	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	if err := gocv.CvtColor(src, &ycrcb, gocv.ColorBGRToYCrCb); err != nil {
		return gocv.NewMat(), fmt.Errorf("superres: luma split: %w", err)
	}

	channels := gocv.Split(ycrcb)
	defer closeMats(channels)
	if len(channels) != 3 {
		return gocv.NewMat(), errors.New("superres: unexpected channel layout")
	}

	blob := gocv.BlobFromImage(channels[0], 1.0/255.0, image.Point{}, gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	net.SetInput(blob, "")
	output := net.Forward("")
	defer output.Close()
	if output.Empty() {
		return gocv.NewMat(), errors.New("superres: inference produced no output")
	}

	luma := gocv.GetBlobChannel(output, 0, 0)
	defer luma.Close()
	if luma.Empty() {
		return gocv.NewMat(), errors.New("superres: inference produced no luma plane")
	}

	width := src.Cols() * upscaleFactor
	height := src.Rows() * upscaleFactor
	if luma.Cols() != width || luma.Rows() != height {
		return gocv.NewMat(), fmt.Errorf("superres: unexpected output size %dx%d, want %dx%d",
			luma.Cols(), luma.Rows(), width, height)
	}

	luma8 := gocv.NewMat()
	defer luma8.Close()
	luma.ConvertToWithParams(&luma8, gocv.MatTypeCV8U, 255, 0)

	size := image.Point{X: width, Y: height}
	crUp := gocv.NewMat()
	defer crUp.Close()
	if err := gocv.Resize(channels[1], &crUp, size, 0, 0, gocv.InterpolationCubic); err != nil {
		return gocv.NewMat(), fmt.Errorf("superres: chroma resize: %w", err)
	}
	cbUp := gocv.NewMat()
	defer cbUp.Close()
	if err := gocv.Resize(channels[2], &cbUp, size, 0, 0, gocv.InterpolationCubic); err != nil {
		return gocv.NewMat(), fmt.Errorf("superres: chroma resize: %w", err)
	}

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{luma8, crUp, cbUp}, &merged)

	dst := gocv.NewMat()
	if err := gocv.CvtColor(merged, &dst, gocv.ColorYCrCbToBGR); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("superres: color merge: %w", err)
	}
	return dst, nil
}

func closeMats(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
