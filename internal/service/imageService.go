package service

import (
	"bytes"
	"fmt"
	"path"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/pipeline"
)

const thumbnailSize = 320

// EnhanceUpload decodes the uploaded bytes, runs the enhancement
// pipeline and persists the result. If enhancement itself fails the
// original image is saved instead, so the caller always gets an
// output for any decodable upload.
func (s *imageService) EnhanceUpload(data []byte) (*entity.UploadResult, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, ErrInvalidImage
	}
	if img.Empty() {
		img.Close()
		return nil, ErrInvalidImage
	}
	defer img.Close()

	enhanced, err := pipeline.Enhance(img, s.params)
	if err != nil {
		logrus.Warnf("enhancement failed, saving original: %v", err)
		enhanced = img.Clone()
	}
	defer enhanced.Close()

	id := uuid.New().String()
	outName := path.Join(s.outputDir, id+".jpg")

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, enhanced)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer buf.Close()

	if err := s.storage.SaveBytes(outName, buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	thumbPath := s.saveThumbnail(id, enhanced)

	record := &entity.Image{
		ID:            id,
		Status:        entity.StatusCompleted,
		Variant:       s.variant,
		OutputPath:    path.Join("static", outName),
		ThumbnailPath: thumbPath,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Save(record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return &entity.UploadResult{
		ID:            record.ID,
		OutputPath:    record.OutputPath,
		ThumbnailPath: record.ThumbnailPath,
	}, nil
}

// saveThumbnail is best-effort: an empty path is returned when the
// thumbnail cannot be produced.
func (s *imageService) saveThumbnail(id string, mat gocv.Mat) string {
	img, err := mat.ToImage()
	if err != nil {
		logrus.Warnf("thumbnail skipped for %s: %v", id, err)
		return ""
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		logrus.Warnf("thumbnail skipped for %s: %v", id, err)
		return ""
	}

	thumbName := path.Join(s.outputDir, id+"_thumb.jpg")
	if err := s.storage.SaveBytes(thumbName, buf.Bytes()); err != nil {
		logrus.Warnf("thumbnail skipped for %s: %v", id, err)
		return ""
	}

	return path.Join("static", thumbName)
}

func (s *imageService) GetImage(id string) (*entity.Image, error) {
	img, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrNotFound
	}
	return img, nil
}

func (s *imageService) DeleteImage(id string) error {
	img, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
