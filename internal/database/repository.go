package database

import (
	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/storage"
)

// ImageRepository persists enhancement records. FindByID returns
// (nil, nil) when no record exists.
type ImageRepository interface {
	Save(image *entity.Image) error
	FindByID(id string) (*entity.Image, error)
	Delete(id string) error
}

type fileImageRepository struct {
	storage storage.FileStorage
}
