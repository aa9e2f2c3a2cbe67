package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// maxAvatarDimension caps the longest avatar edge before storage.
const maxAvatarDimension = 512

type FileService interface {
	// UploadAvatar stores a profile picture, downscaled to a thumbnail.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadChatFile stores a chat attachment as-is and reports whether it
	// is an image, so the caller can pick the message type.
	UploadChatFile(ctx context.Context, userID string, file io.Reader, filename string) (path string, isImage bool, err error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	thumbnail, err := makeThumbnail(buffer)
	if err != nil {
		return "", fmt.Errorf("failed to process avatar: %w", err)
	}

	// Re-encoded thumbnails are always JPEG.
	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uuid.New().String())
	path := filepath.Join("avatars", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(thumbnail), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadedPath, nil
}

// UploadChatFile implements FileService.
func (s *fileServiceImpl) UploadChatFile(ctx context.Context, userID string, file io.Reader, filename string) (string, bool, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", false, fmt.Errorf("filename must have an extension")
	}

	contentType := "application/octet-stream"
	isImage := false
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
		isImage = true
	case ".png":
		contentType = "image/png"
		isImage = true
	case ".gif":
		contentType = "image/gif"
		isImage = true
	case ".pdf":
		contentType = "application/pdf"
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("chat", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", false, fmt.Errorf("failed to upload chat file: %w", err)
	}

	return uploadedPath, isImage, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL implements FileService.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// makeThumbnail decodes the image and scales it down so the longest edge is
// at most maxAvatarDimension pixels. Smaller images pass through unscaled.
func makeThumbnail(buffer []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxAvatarDimension || height > maxAvatarDimension {
		scale := float64(maxAvatarDimension) / float64(width)
		if height > width {
			scale = float64(maxAvatarDimension) / float64(height)
		}
		newWidth := int(float64(width) * scale)
		newHeight := int(float64(height) * scale)

		scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}
