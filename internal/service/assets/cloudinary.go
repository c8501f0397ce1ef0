package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"company-service/internal/config"
	xerrors "company-service/pkg/xerrors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	logger  *zap.Logger
	timeout time.Duration
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary configuration is incomplete")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}

	return &CloudinaryUploader{
		cld:     cld,
		logger:  logger,
		timeout: 30 * time.Second,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, src Source, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
		Overwrite:    api.Bool(true),
	}

	var file interface{}
	if src.IsBuffer() {
		file = bytes.NewReader(src.Data)
	} else {
		file = src.RemotePath
	}

	resp, err := u.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		u.logger.Error("cloudinary upload failed", zap.String("folder", folder), zap.Error(err))
		return "", fmt.Errorf("%w: %v", xerrors.ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		u.logger.Error("cloudinary upload rejected",
			zap.String("folder", folder), zap.String("reason", resp.Error.Message))
		return "", fmt.Errorf("%w: %s", xerrors.ErrUploadFailed, resp.Error.Message)
	}

	u.logger.Info("image uploaded",
		zap.String("folder", folder), zap.String("url", resp.SecureURL))
	return resp.SecureURL, nil
}
