package services

import (
	"bytes"
	"context"
	"image"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/repository"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/storage"
)

// ErrNotFound mirrors the repository sentinel for handler mapping.
var ErrNotFound = repository.ErrNotFound

// PhotoRepo is the slice of the photo repository the gallery needs.
type PhotoRepo interface {
	Insert(ctx context.Context, p *models.Photo) error
	List(ctx context.Context) ([]models.Photo, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Photo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GalleryService owns the upload pipeline and the photo catalog.
type GalleryService struct {
	repo  PhotoRepo
	store storage.Store
	log   *zap.SugaredLogger
}

func NewGalleryService(repo PhotoRepo, store storage.Store, log *zap.SugaredLogger) *GalleryService {
	return &GalleryService{repo: repo, store: store, log: log}
}

// Upload persists the file first and only then creates the record, so a
// Photo never references a file that was not written. A crash in between
// leaves an orphaned file, never an orphaned record.
func (s *GalleryService) Upload(ctx context.Context, filename, contentType string, data []byte, title, description, category string) (*models.Photo, error) {
	name := storage.FileName(filename)
	url, err := s.store.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		Title:       title,
		Description: description,
		Category:    category,
		ImageURL:    url,
		UploadedAt:  time.Now().UTC(),
	}
	if photo.Title == "" {
		photo.Title = "Untitled"
	}
	if photo.Category == "" {
		photo.Category = "general"
	}

	if strings.HasPrefix(contentType, "image/") {
		if thumbURL, err := s.saveThumbnail(ctx, name, data); err == nil {
			photo.ThumbURL = thumbURL
		} else {
			s.log.Debugw("thumbnail skipped", "file", name, "error", err)
		}
	}

	if err := s.repo.Insert(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *GalleryService) List(ctx context.Context) ([]models.Photo, error) {
	return s.repo.List(ctx)
}

// Delete removes the record and, best effort, its files. The two stores are
// not transactional: a failed file removal is logged and the record is
// deleted anyway, trading a possible leaked file for a clean catalog.
func (s *GalleryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if photo.ImageURL != "" {
		if err := s.store.Remove(ctx, path.Base(photo.ImageURL)); err != nil {
			s.log.Warnw("could not remove file", "imageUrl", photo.ImageURL, "error", err)
		}
	}
	if photo.ThumbURL != "" {
		if err := s.store.Remove(ctx, path.Base(photo.ThumbURL)); err != nil {
			s.log.Warnw("could not remove thumbnail", "thumbUrl", photo.ThumbURL, "error", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *GalleryService) saveThumbnail(ctx context.Context, name string, data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return "", err
	}
	return s.store.Save(ctx, "thumb_"+name+".jpg", "image/jpeg", buf.Bytes())
}
