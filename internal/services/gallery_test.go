package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
)

type fakePhotoRepo struct {
	photos    map[primitive.ObjectID]models.Photo
	insertErr error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[primitive.ObjectID]models.Photo{}}
}

func (r *fakePhotoRepo) Insert(_ context.Context, p *models.Photo) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.photos[p.ID] = *p
	return nil
}

func (r *fakePhotoRepo) List(_ context.Context) ([]models.Photo, error) {
	out := []models.Photo{}
	for _, p := range r.photos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *fakePhotoRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

type fakeStore struct {
	files     map[string][]byte
	saveErr   error
	removeErr error
	removed   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (s *fakeStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.files[name] = data
	return "/uploads/" + name, nil
}

func (s *fakeStore) Remove(_ context.Context, name string) error {
	s.removed = append(s.removed, name)
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.files, name)
	return nil
}

func newGallery(repo *fakePhotoRepo, store *fakeStore) *GalleryService {
	return NewGalleryService(repo, store, zap.NewNop().Sugar())
}

func TestUploadAppliesDefaults(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	photo, err := svc.Upload(context.Background(), "pic one.jpg", "application/octet-stream", []byte("x"), "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Untitled", photo.Title)
	assert.Equal(t, "general", photo.Category)
	assert.Empty(t, photo.Description)
	assert.False(t, photo.UploadedAt.IsZero())
	assert.False(t, photo.ID.IsZero())
	assert.Contains(t, photo.ImageURL, "pic_one.jpg")

	// file really stored, record really inserted
	assert.Len(t, store.files, 1)
	assert.Len(t, repo.photos, 1)
}

func TestUploadKeepsGivenFields(t *testing.T) {
	svc := newGallery(newFakePhotoRepo(), newFakeStore())
	photo, err := svc.Upload(context.Background(), "a.jpg", "text/plain", []byte("x"),
		"Tree Drive", "planting", "environment")
	require.NoError(t, err)
	assert.Equal(t, "Tree Drive", photo.Title)
	assert.Equal(t, "planting", photo.Description)
	assert.Equal(t, "environment", photo.Category)
}

func TestUploadSlashFilenameKeepsURLAndFileInSync(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	photo, err := svc.Upload(context.Background(), "album/pic.jpg", "text/plain", []byte("first"), "", "", "")
	require.NoError(t, err)

	// imageUrl stays flat under the public path and names the stored file
	key := strings.TrimPrefix(photo.ImageURL, "/uploads/")
	assert.NotContains(t, key, "/")
	assert.Contains(t, store.files, key)

	// an upload with a different directory but the same base name must not
	// overwrite the first photo's bytes
	time.Sleep(2 * time.Millisecond) // distinct timestamp prefix
	photo2, err := svc.Upload(context.Background(), "other/pic.jpg", "text/plain", []byte("second"), "", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, photo.ImageURL, photo2.ImageURL)
	assert.Equal(t, []byte("first"), store.files[key])
}

func TestUploadStoreFailureCreatesNoRecord(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := newGallery(repo, store)

	_, err := svc.Upload(context.Background(), "a.jpg", "image/jpeg", []byte("x"), "", "", "")
	require.Error(t, err)
	assert.Empty(t, repo.photos)
}

func TestUploadImageGetsThumbnail(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 640, 480))))

	photo, err := svc.Upload(context.Background(), "big.png", "image/png", buf.Bytes(), "", "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, photo.ThumbURL)
	assert.Len(t, store.files, 2)
}

func TestUploadBadImageSkipsThumbnail(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	photo, err := svc.Upload(context.Background(), "fake.png", "image/png", []byte("not an image"), "", "", "")
	require.NoError(t, err)
	assert.Empty(t, photo.ThumbURL)
	assert.Len(t, store.files, 1)
}

func TestDeleteRemovesRecordAndFile(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	photo, err := svc.Upload(context.Background(), "a.jpg", "text/plain", []byte("x"), "", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), photo.ID))
	assert.Empty(t, repo.photos)
	assert.Empty(t, store.files)
}

func TestDeleteFileFailureStillDeletesRecord(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	photo, err := svc.Upload(context.Background(), "a.jpg", "text/plain", []byte("x"), "", "", "")
	require.NoError(t, err)

	store.removeErr = errors.New("permission denied")
	require.NoError(t, svc.Delete(context.Background(), photo.ID))
	assert.Empty(t, repo.photos)
	assert.NotEmpty(t, store.removed)
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	repo, store := newFakePhotoRepo(), newFakeStore()
	svc := newGallery(repo, store)

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.removed)
}
