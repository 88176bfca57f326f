package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/pipeline"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/storage"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/superres"
)

// Runner applies the enhancement pipeline to every supported image in
// an input directory and writes one output file per stage, named
// {base}_{stage}{ext}.
type Runner struct {
	inputDir string
	storage  storage.FileStorage
	params   pipeline.Params

	// Nil disables the super-resolution stage.
	upscaler *superres.Upscaler
}

func NewRunner(inputDir, outputDir string, params pipeline.Params, upscaler *superres.Upscaler) *Runner {
	return &Runner{
		inputDir: inputDir,
		storage:  storage.NewFileStorage(outputDir),
		params:   params,
		upscaler: upscaler,
	}
}

// Run walks the input directory once. No per-file failure stops the
// run; a missing input directory is the only error returned.
func (r *Runner) Run() (entity.BatchSummary, error) {
	var summary entity.BatchSummary

	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		return summary, fmt.Errorf("input directory %q not readable: %w", r.inputDir, err)
	}

	logrus.Infof("processing images from %s", r.inputDir)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isSupportedImage(name) {
			continue
		}

		img := gocv.IMRead(filepath.Join(r.inputDir, name), gocv.IMReadColor)
		if img.Empty() {
			img.Close()
			logrus.Warnf("skipped %s: not a decodable image", name)
			summary.Skipped++
			continue
		}

		err := r.processImage(name, img)
		img.Close()
		if err != nil {
			logrus.Errorf("failed %s: %v", name, err)
			summary.Failed++
			continue
		}

		logrus.Infof("done: %s", name)
		summary.Processed++
	}

	logrus.Infof("batch complete: %d processed, %d skipped, %d failed",
		summary.Processed, summary.Skipped, summary.Failed)
	return summary, nil
}

func (r *Runner) processImage(name string, img gocv.Mat) error {
	enhanced, err := pipeline.Enhance(img, r.params)
	if err != nil {
		// Enhancement is best-effort cosmetics: degrade to the
		// unmodified input instead of failing the file.
		logrus.Warnf("enhancement failed for %s, writing original: %v", name, err)
		enhanced = img.Clone()
	}
	defer enhanced.Close()

	if err := r.writeStage(name, "enhanced", enhanced); err != nil {
		return err
	}

	if r.upscaler != nil {
		upscaled, err := r.upscaler.Upscale(enhanced)
		if err != nil {
			logrus.Warnf("super-resolution failed for %s, writing input unchanged: %v", name, err)
			upscaled = enhanced.Clone()
		}
		err = r.writeStage(name, "superres", upscaled)
		upscaled.Close()
		if err != nil {
			return err
		}
	}

	filtered, err := pipeline.ApplyFilters(enhanced)
	if err != nil {
		logrus.Warnf("filters failed for %s: %v", name, err)
	}
	defer pipeline.CloseFilters(filtered)

	for _, filterName := range pipeline.FilterNames() {
		mat, ok := filtered[filterName]
		if !ok {
			continue
		}
		if err := r.writeStage(name, filterName, mat); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) writeStage(filename, stage string, img gocv.Mat) error {
	out := outputName(filename, stage)

	buf, err := encodeMat(img, filepath.Ext(filename))
	if err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	defer buf.Close()

	if err := r.storage.SaveBytes(out, buf.GetBytes()); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

func outputName(filename, stage string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", base, stage, ext)
}

func encodeMat(img gocv.Mat, ext string) (*gocv.NativeByteBuffer, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return gocv.IMEncode(gocv.PNGFileExt, img)
	default:
		return gocv.IMEncode(gocv.JPEGFileExt, img)
	}
}

func isSupportedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
