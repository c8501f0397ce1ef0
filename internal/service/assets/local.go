package assets

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalUploader writes buffers under baseDir and returns URLs rooted at
// /uploads/, which the router serves as static files. It stands in for
// Cloudinary during local development.
type LocalUploader struct {
	baseDir string
	logger  *zap.Logger
}

func NewLocalUploader(baseDir string, logger *zap.Logger) (*LocalUploader, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{baseDir: baseDir, logger: logger}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, src Source, folder string) (string, error) {
	// Remote sources are already URLs; nothing to store locally.
	if !src.IsBuffer() {
		return src.RemotePath, nil
	}

	ext := ".img"
	if exts, err := mime.ExtensionsByType(src.MimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}

	name := uuid.NewString() + ext
	dir := filepath.Join(u.baseDir, filepath.Base(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, src.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	url := "/uploads/" + filepath.Base(folder) + "/" + name
	u.logger.Info("image stored locally", zap.String("path", path))
	return url, nil
}
