package service

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/image-enhancer/internal/database"
	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/pipeline"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/storage"
)

func newTestService(t *testing.T) (ImageService, string) {
	t.Helper()

	staticDir := t.TempDir()
	st := storage.NewFileStorage(staticDir)
	repo := database.NewImageRepository(st)
	svc := NewImageService(repo, st, pipeline.Lenient(), "lenient", "output")
	return svc, staticDir
}

func encodeTestJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 5), B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestEnhanceUpload(t *testing.T) {
	svc, staticDir := newTestService(t)

	result, err := svc.EnhanceUpload(encodeTestJPEG(t))
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "static/output/"+result.ID+".jpg", result.OutputPath)
	assert.Equal(t, "static/output/"+result.ID+"_thumb.jpg", result.ThumbnailPath)

	assert.FileExists(t, filepath.Join(staticDir, "output", result.ID+".jpg"))
	assert.FileExists(t, filepath.Join(staticDir, "output", result.ID+"_thumb.jpg"))

	record, err := svc.GetImage(result.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, record.Status)
	assert.Equal(t, "lenient", record.Variant)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestEnhanceUploadDistinctIDs(t *testing.T) {
	svc, _ := newTestService(t)
	data := encodeTestJPEG(t)

	first, err := svc.EnhanceUpload(data)
	require.NoError(t, err)
	second, err := svc.EnhanceUpload(data)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestEnhanceUploadInvalidData(t *testing.T) {
	svc, staticDir := newTestService(t)

	result, err := svc.EnhanceUpload([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Nil(t, result)

	entries, globErr := filepath.Glob(filepath.Join(staticDir, "output", "*"))
	require.NoError(t, globErr)
	assert.Empty(t, entries)
}

func TestGetImageNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetImage("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteImage(t *testing.T) {
	svc, staticDir := newTestService(t)

	result, err := svc.EnhanceUpload(encodeTestJPEG(t))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(result.ID))

	_, err = svc.GetImage(result.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoFileExists(t, filepath.Join(staticDir, "output", result.ID+".jpg"))
	assert.NoFileExists(t, filepath.Join(staticDir, "output", result.ID+"_thumb.jpg"))

	assert.ErrorIs(t, svc.DeleteImage(result.ID), ErrNotFound)
}
