package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealbook/backend/internal/mocks"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

const testBaseURL = "https://cdn.example.com/mealbook-images"

// noisyPNG returns an incompressible PNG so its encoded size tracks w*h
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func smallJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 120, 40, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	svc := service.NewImageServiceWithStorage(new(mocks.MockObjectStorage), "bucket", testBaseURL)

	tests := []struct {
		name        string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"jpeg", 1024, "image/jpeg", false},
		{"jpg alias", 1024, "image/jpg", false},
		{"png with params", 1024, "image/png; charset=binary", false},
		{"webp", 1024, "image/webp", false},
		{"exactly five megabytes", service.MaxImageSize, "image/png", false},
		{"too large", service.MaxImageSize + 1, "image/png", true},
		{"empty", 0, "image/png", true},
		{"gif", 1024, "image/gif", true},
		{"no type", 1024, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateImage(tt.size, tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompressImageScalesDown(t *testing.T) {
	data := noisyPNG(t, 1200, 600)

	out, contentType, err := service.CompressImage(data, 800, 80)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestCompressImageNeverUpscales(t *testing.T) {
	out, contentType, err := service.CompressImage(smallJPEG(t, 120, 90), 800, 80)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 90, cfg.Height)
}

func TestCompressImageRejectsGarbage(t *testing.T) {
	_, _, err := service.CompressImage([]byte("not an image"), 800, 80)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("recipe image is stored as is", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("PutObject", mock.Anything, "recipes/recipe-1/my-photo.jpg").Return(nil)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL+"/")

		data := smallJPEG(t, 64, 64)
		url, err := svc.UploadImage(ctx, &service.UploadRequest{
			Data:        data,
			FileName:    "my photo.jpg",
			ContentType: "image/jpeg",
			RecipeID:    "recipe-1",
		})
		require.NoError(t, err)
		assert.Equal(t, testBaseURL+"/recipes/recipe-1/my-photo.jpg", url)
		require.Len(t, storage.Objects, 1)
		assert.Equal(t, data, storage.Objects[0].Body)
		assert.Equal(t, "image/jpeg", storage.Objects[0].ContentType)
		storage.AssertExpectations(t)
	})

	t.Run("large meal log photo is compressed", func(t *testing.T) {
		data := noisyPNG(t, 1200, 600)
		require.Greater(t, len(data), service.CompressThreshold)

		storage := new(mocks.MockObjectStorage)
		storage.On("PutObject", mock.Anything, "meal-logs/log-7/dinner.png").Return(nil)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		url, err := svc.UploadImage(ctx, &service.UploadRequest{
			Data:        data,
			FileName:    "../../dinner.png",
			ContentType: "image/png",
			MealLogID:   "log-7",
		})
		require.NoError(t, err)
		assert.Equal(t, testBaseURL+"/meal-logs/log-7/dinner.png", url)
		require.Len(t, storage.Objects, 1)
		assert.Less(t, len(storage.Objects[0].Body), len(data))

		cfg, err := png.DecodeConfig(bytes.NewReader(storage.Objects[0].Body))
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Width)
	})

	t.Run("no owner uses a temporary prefix", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("PutObject", mock.Anything, mock.AnythingOfType("string")).Return(nil)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		url, err := svc.UploadImage(ctx, &service.UploadRequest{
			Data:        smallJPEG(t, 32, 32),
			FileName:    "new.jpg",
			ContentType: "image/jpeg",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^https://cdn\.example\.com/mealbook-images/recipes/temp-\d+/new\.jpg$`, url)
	})

	t.Run("invalid type is not stored", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		_, err := svc.UploadImage(ctx, &service.UploadRequest{
			Data:        []byte("GIF89a"),
			FileName:    "anim.gif",
			ContentType: "image/gif",
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("PutObject", mock.Anything, mock.Anything).Return(errors.New("access denied"))
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		_, err := svc.UploadImage(ctx, &service.UploadRequest{
			Data:        smallJPEG(t, 32, 32),
			FileName:    "a.jpg",
			ContentType: "image/jpeg",
			RecipeID:    "r",
		})
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the object key", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("DeleteObject", mock.Anything, "recipes/r1/a.jpg").Return(nil)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		svc.DeleteImage(ctx, testBaseURL+"/recipes/r1/a.jpg")
		storage.AssertExpectations(t)
	})

	t.Run("foreign url is ignored", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		svc.DeleteImage(ctx, "https://elsewhere.example.com/a.jpg")
		svc.DeleteImage(ctx, "data:image/png;base64,AAAA")
		storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})

	t.Run("failures are swallowed", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("DeleteObject", mock.Anything, "recipes/r1/a.jpg").Return(errors.New("timeout"))
		svc := service.NewImageServiceWithStorage(storage, "bucket", testBaseURL)

		assert.NotPanics(t, func() {
			svc.DeleteImage(ctx, testBaseURL+"/recipes/r1/a.jpg")
		})
		storage.AssertExpectations(t)
	})
}
