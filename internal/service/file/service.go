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
	"github.com/peoplecore/hrms-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const maxAvatarDimension = 512

type FileService interface {
	// UploadAvatar stores an employee avatar, normalized to JPEG and resized
	// to fit within maxAvatarDimension.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadLeaveAttachment stores a leave request attachment as-is.
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

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

func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	normalized, err := normalizeAvatar(buffer)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uuid.New().String())
	path := filepath.Join("avatars", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(normalized), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	path := filepath.Join("leave", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// normalizeAvatar decodes the image, scales it down so the longer edge fits
// maxAvatarDimension, and re-encodes as JPEG.
func normalizeAvatar(buffer []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxAvatarDimension || height > maxAvatarDimension {
		ratio := float64(maxAvatarDimension) / float64(width)
		if height > width {
			ratio = float64(maxAvatarDimension) / float64(height)
		}
		newWidth := int(float64(width) * ratio)
		newHeight := int(float64(height) * ratio)

		dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	return buf.Bytes(), nil
}
