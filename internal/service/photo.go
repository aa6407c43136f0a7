package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// photos larger than this on either side are scaled down before upload
	maxPhotoDimension = 2048
	photoJPEGQuality  = 90
	// decoded pixel count above which an upload is rejected unread
	maxPhotoPixels = 40_000_000
)

// ImageHost stores a local image file and returns its public URL
type ImageHost interface {
	Upload(ctx context.Context, path string) (string, error)
}

// PhotoService relays uploaded photos to the image host
type PhotoService struct {
	host   ImageHost
	tmpDir string
}

// PhotoServiceConfig holds configuration for the photo service
type PhotoServiceConfig struct {
	Host   ImageHost
	TmpDir string
}

// NewPhotoService creates a new photo service
func NewPhotoService(cfg PhotoServiceConfig) *PhotoService {
	tmpDir := cfg.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &PhotoService{
		host:   cfg.Host,
		tmpDir: tmpDir,
	}
}

// Upload stages src as a JPEG under a unique name, forwards it to the image
// host and returns the hosted URL. The staged file is always removed.
func (s *PhotoService) Upload(ctx context.Context, src io.Reader) (string, error) {
	path, err := s.stage(src)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove staged photo", slog.String("path", path), slog.String("error", err.Error()))
		}
	}()

	url, err := s.host.Upload(ctx, path)
	if err != nil {
		slog.Error("image host upload failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", ErrImageHost, err)
	}
	return url, nil
}

// stage decodes the upload and writes it as a JPEG in tmpDir
func (s *PhotoService) stage(src io.Reader) (string, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(src, &header))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPhotoPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, maxPhotoPixels)
	}

	img, err := imaging.Decode(io.MultiReader(&header, src), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > maxPhotoDimension || b.Dy() > maxPhotoDimension {
		img = imaging.Fit(img, maxPhotoDimension, maxPhotoDimension, imaging.Lanczos)
	}

	path := filepath.Join(s.tmpDir, uuid.NewString()+".jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(photoJPEGQuality)); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	return path, nil
}

// SweepStaged removes staged photos older than maxAge that were left behind
// by an interrupted upload. Only <uuid>.jpg files are considered. Returns the
// number of files removed.
func (s *PhotoService) SweepStaged(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.tmpDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !isStagedName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.tmpDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove stale photo", slog.String("name", entry.Name()), slog.String("error", err.Error()))
			continue
		}
		removed++
	}
	return removed, nil
}

func isStagedName(name string) bool {
	base, ok := strings.CutSuffix(name, ".jpg")
	if !ok {
		return false
	}
	_, err := uuid.Parse(base)
	return err == nil && len(base) == 36
}
