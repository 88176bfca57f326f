package service

import (
	"errors"

	"github.com/ds124wfegd/image-enhancer/internal/database"
	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/pipeline"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/storage"
)

var (
	ErrInvalidImage = errors.New("uploaded data is not a decodable image")
	ErrSaveFailed   = errors.New("failed to save enhanced image")
	ErrNotFound     = errors.New("image not found")
)

type ImageService interface {
	EnhanceUpload(data []byte) (*entity.UploadResult, error)
	GetImage(id string) (*entity.Image, error)
	DeleteImage(id string) error
}

type imageService struct {
	repo    database.ImageRepository
	storage storage.FileStorage
	params  pipeline.Params
	variant string
	// relative to the storage root, prepended to output filenames
	outputDir string
}

func NewImageService(repo database.ImageRepository, st storage.FileStorage, params pipeline.Params, variant, outputDir string) ImageService {
	return &imageService{
		repo:      repo,
		storage:   st,
		params:    params,
		variant:   variant,
		outputDir: outputDir,
	}
}
