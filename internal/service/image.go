package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/pageza/mealbook/backend/config"
	"github.com/pageza/mealbook/backend/internal/model"
)

const (
	// MaxImageSize is the largest accepted upload
	MaxImageSize = 5 * 1024 * 1024

	// CompressThreshold is the size above which uploads are down-scaled
	CompressThreshold = 1024 * 1024

	DefaultMaxDimension = 800
	DefaultJPEGQuality  = 80
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ObjectStorage is the subset of the S3 API the image service uses
type ObjectStorage interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// UploadRequest is a recipe image or meal log photo to store. At most one of
// RecipeID and MealLogID is used; with neither the image goes under a
// temporary recipe prefix.
type UploadRequest struct {
	Data        []byte
	FileName    string
	ContentType string
	RecipeID    string
	MealLogID   string
}

// ImageService validates, compresses and stores images
type ImageService struct {
	storage ObjectStorage
	bucket  string
	baseURL string
	now     func() time.Time
}

// NewImageService creates an ImageService backed by the configured S3 bucket
func NewImageService(s3Config *config.S3Config) *ImageService {
	return NewImageServiceWithStorage(s3Config.Client, s3Config.BucketName, s3Config.PublicURL())
}

// NewImageServiceWithStorage creates an ImageService on any ObjectStorage
func NewImageServiceWithStorage(storage ObjectStorage, bucket, baseURL string) *ImageService {
	return &ImageService{
		storage: storage,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

var _ IImageService = (*ImageService)(nil)

// ValidateImage checks the upload size and MIME type
func (s *ImageService) ValidateImage(size int64, contentType string) error {
	if size > MaxImageSize {
		return model.NewValidationError("file", "image size must be less than 5MB")
	}
	if size <= 0 {
		return model.NewValidationError("file", "image is empty")
	}
	if !allowedImageTypes[normalizeContentType(contentType)] {
		return model.NewValidationError("file", "only JPEG, PNG, and WebP images are allowed")
	}
	return nil
}

// UploadImage validates the image, compresses it when it is larger than
// CompressThreshold, and stores it. It returns the public URL.
func (s *ImageService) UploadImage(ctx context.Context, req *UploadRequest) (string, error) {
	contentType := normalizeContentType(req.ContentType)
	if err := s.ValidateImage(int64(len(req.Data)), contentType); err != nil {
		return "", err
	}

	data, fileName := req.Data, sanitizeFileName(req.FileName)
	if len(data) > CompressThreshold {
		compressed, newType, err := CompressImage(data, DefaultMaxDimension, DefaultJPEGQuality)
		if err != nil {
			return "", err
		}
		log.Debug().
			Str("component", "images").
			Int("original_bytes", len(data)).
			Int("compressed_bytes", len(compressed)).
			Msg("Compressed image")
		if newType != contentType {
			fileName = strings.TrimSuffix(fileName, path.Ext(fileName)) + ".jpg"
		}
		data, contentType = compressed, newType
	}

	key := s.objectKey(req, fileName)
	_, err := s.storage.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.baseURL + "/" + key
	log.Info().Str("component", "images").Str("url", publicURL).Msg("Uploaded image")
	return publicURL, nil
}

// DeleteImage removes a previously uploaded image. Failures are logged and
// otherwise ignored.
func (s *ImageService) DeleteImage(ctx context.Context, url string) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		log.Warn().Str("component", "images").Str("url", url).Msg("Not deleting image outside the bucket")
		return
	}
	key := strings.TrimPrefix(url, prefix)

	_, err := s.storage.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("component", "images").Str("key", key).Msg("Error deleting image")
		return
	}
	log.Info().Str("component", "images").Str("key", key).Msg("Image deleted")
}

func (s *ImageService) objectKey(req *UploadRequest, fileName string) string {
	switch {
	case req.RecipeID != "":
		return fmt.Sprintf("recipes/%s/%s", sanitizeFileName(req.RecipeID), fileName)
	case req.MealLogID != "":
		return fmt.Sprintf("meal-logs/%s/%s", sanitizeFileName(req.MealLogID), fileName)
	default:
		return fmt.Sprintf("recipes/temp-%d/%s", s.now().UnixMilli(), fileName)
	}
}

// CompressImage scales the image so neither side exceeds maxDim and
// re-encodes it. PNG input stays PNG; JPEG and WebP are written as JPEG.
// Images already within maxDim are re-encoded at their original size.
func CompressImage(data []byte, maxDim, quality int) ([]byte, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", model.NewValidationError("file", "not a decodable image")
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	ratio := math.Min(float64(maxDim)/float64(w), float64(maxDim)/float64(h))
	if ratio > 1 {
		ratio = 1
	}
	nw := int(math.Max(1, math.Round(float64(w)*ratio)))
	nh := int(math.Max(1, math.Round(float64(h)*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

func normalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "image/jpg" {
		return "image/jpeg"
	}
	return contentType
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "." || name == "/" || name == ".." || name == "" {
		return "image"
	}
	return name
}
