package pipeline

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Enhance runs the fixed denoise -> sharpen -> contrast sequence on a
// color buffer and returns a new buffer with the same dimensions and
// channel count. src is never modified. On failure the returned error
// names the stage that broke; callers decide whether to fall back to
// the original buffer.
func Enhance(src gocv.Mat, p Params) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("enhance: empty input buffer")
	}
	if src.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("enhance: expected 3-channel color input, got %d channels", src.Channels())
	}

	denoised, err := denoise(src, p)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer denoised.Close()

	sharpened, err := unsharpMask(denoised, p)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer sharpened.Close()

	working := sharpened
	if p.HighBoost {
		boosted, err := highBoost(sharpened)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer boosted.Close()
		working = boosted
	}

	enhanced, err := contrastCorrect(working, p)
	if err != nil {
		return gocv.NewMat(), err
	}

	if !p.DetailEnhance {
		return enhanced, nil
	}

	detailed := gocv.NewMat()
	gocv.DetailEnhance(enhanced, &detailed, p.DetailSigmaS, p.DetailSigmaR)
	enhanced.Close()
	if detailed.Empty() {
		detailed.Close()
		return gocv.NewMat(), fmt.Errorf("enhance: detail enhancement produced empty buffer")
	}
	return detailed, nil
}

func denoise(src gocv.Mat, p Params) (gocv.Mat, error) {
	dst := gocv.NewMat()
	gocv.FastNlMeansDenoisingColoredWithParams(src, &dst,
		p.DenoiseStrength, p.DenoiseColorStrength,
		p.DenoiseTemplateSize, p.DenoiseSearchSize)
	if dst.Empty() {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("enhance: denoise produced empty buffer")
	}
	return dst, nil
}

// unsharpMask subtracts a Gaussian-blurred copy from the input with
// the configured weight pair.
func unsharpMask(src gocv.Mat, p Params) (gocv.Mat, error) {
	blurred := gocv.NewMat()
	defer blurred.Close()

	// Zero kernel size lets OpenCV derive it from sigma.
	if err := gocv.GaussianBlur(src, &blurred, image.Point{}, p.SharpenSigma, p.SharpenSigma, gocv.BorderDefault); err != nil {
		return gocv.NewMat(), fmt.Errorf("enhance: sharpen blur: %w", err)
	}

	dst := gocv.NewMat()
	gocv.AddWeighted(src, p.SharpenWeight, blurred, p.BlurWeight, 0, &dst)
	if dst.Empty() {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("enhance: unsharp mask produced empty buffer")
	}
	return dst, nil
}

func highBoost(src gocv.Mat) (gocv.Mat, error) {
	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()

	weights := [3][3]float32{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
	for y, row := range weights {
		for x, v := range row {
			kernel.SetFloatAt(y, x, v)
		}
	}

	dst := gocv.NewMat()
	if err := gocv.Filter2D(src, &dst, -1, kernel, image.Point{X: -1, Y: -1}, 0, gocv.BorderDefault); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("enhance: high-boost convolution: %w", err)
	}
	return dst, nil
}

// contrastCorrect equalizes the lightness channel in Lab space so
// chroma is untouched.
func contrastCorrect(src gocv.Mat, p Params) (gocv.Mat, error) {
	lab := gocv.NewMat()
	defer lab.Close()
	if err := gocv.CvtColor(src, &lab, gocv.ColorBGRToLab); err != nil {
		return gocv.NewMat(), fmt.Errorf("enhance: Lab conversion: %w", err)
	}

	channels := gocv.Split(lab)
	defer closeMats(channels)
	if len(channels) != 3 {
		return gocv.NewMat(), fmt.Errorf("enhance: unexpected Lab channel layout")
	}

	clahe := gocv.NewCLAHEWithParams(p.ClipLimit, image.Point{X: p.TileGrid, Y: p.TileGrid})
	defer clahe.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(channels[0], &equalized)
	if equalized.Empty() {
		return gocv.NewMat(), fmt.Errorf("enhance: contrast equalization produced empty buffer")
	}

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{equalized, channels[1], channels[2]}, &merged)

	dst := gocv.NewMat()
	if err := gocv.CvtColor(merged, &dst, gocv.ColorLabToBGR); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("enhance: BGR conversion: %w", err)
	}
	return dst, nil
}

func closeMats(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
