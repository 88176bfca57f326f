package pipeline

import "fmt"

// Params enumerates every numeric constant of the enhancement
// pipeline. Values are fixed at definition time; the binaries only
// ever select one of the named presets below.
type Params struct {
	// Non-local-means denoising: luminance and color filter strength,
	// patch window and search window sizes.
	DenoiseStrength      float32
	DenoiseColorStrength float32
	DenoiseTemplateSize  int
	DenoiseSearchSize    int

	// Unsharp mask: Gaussian sigma (kernel size derived from sigma)
	// and the weight pair. SharpenWeight > 1, BlurWeight < 0, and the
	// two sum to 1 so overall brightness is preserved.
	SharpenSigma  float64
	SharpenWeight float64
	BlurWeight    float64

	// Second sharpening pass with a fixed 3x3 high-boost kernel
	// (center 5, four-connected neighbors -1, corners 0).
	HighBoost bool

	// CLAHE applied to the lightness channel of Lab.
	ClipLimit float64
	TileGrid  int

	// Edge-preserving detail enhancement as a final pass.
	DetailEnhance bool
	DetailSigmaS  float32
	DetailSigmaR  float32
}

// Lenient is the upload-service preset: mild denoising and gentle
// sharpening so a single request stays fast and artifacts stay low.
func Lenient() Params {
	return Params{
		DenoiseStrength:      5,
		DenoiseColorStrength: 5,
		DenoiseTemplateSize:  7,
		DenoiseSearchSize:    21,
		SharpenSigma:         1.0,
		SharpenWeight:        1.3,
		BlurWeight:           -0.3,
		ClipLimit:            2.0,
		TileGrid:             8,
	}
}

// Baseline is the default batch preset.
func Baseline() Params {
	return Params{
		DenoiseStrength:      10,
		DenoiseColorStrength: 10,
		DenoiseTemplateSize:  7,
		DenoiseSearchSize:    21,
		SharpenSigma:         1.0,
		SharpenWeight:        1.5,
		BlurWeight:           -0.5,
		ClipLimit:            2.5,
		TileGrid:             8,
	}
}

// Aggressive is the legacy batch preset: strongest sharpening, a
// second high-boost pass, and a final detail-enhancement pass.
func Aggressive() Params {
	return Params{
		DenoiseStrength:      7,
		DenoiseColorStrength: 7,
		DenoiseTemplateSize:  7,
		DenoiseSearchSize:    21,
		SharpenSigma:         1.2,
		SharpenWeight:        1.8,
		BlurWeight:           -0.8,
		HighBoost:            true,
		ClipLimit:            3.5,
		TileGrid:             8,
		DetailEnhance:        true,
		DetailSigmaS:         10,
		DetailSigmaR:         0.15,
	}
}

// ByName maps a configuration variant name to its preset.
func ByName(name string) (Params, error) {
	switch name {
	case "lenient":
		return Lenient(), nil
	case "baseline":
		return Baseline(), nil
	case "aggressive":
		return Aggressive(), nil
	default:
		return Params{}, fmt.Errorf("unknown pipeline variant %q", name)
	}
}
