package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"company-service/internal/service/assets"
	"company-service/pkg/response"
	xerrors "company-service/pkg/xerrors"

	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20 // 5MB

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return xerrors.ErrInvalidRequest
	}
	return nil
}

// parseImageSource pulls the upload out of the request: a multipart file
// under field, or a JSON body with filePath. Size and content checks
// happen here so nothing oversized or non-image reaches the service.
func parseImageSource(r *http.Request, field string, allowFilePath bool) (assets.Source, error) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return assets.Source{}, xerrors.ErrInvalidRequest
		}
		file, header, err := r.FormFile(field)
		if err != nil {
			return assets.Source{}, xerrors.ErrNoFileUploaded
		}
		defer file.Close()

		if header.Size > maxUploadBytes {
			return assets.Source{}, xerrors.ErrFileTooLarge
		}
		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			return assets.Source{}, xerrors.ErrNotAnImage
		}

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			return assets.Source{}, xerrors.ErrInvalidRequest
		}
		if len(data) > maxUploadBytes {
			return assets.Source{}, xerrors.ErrFileTooLarge
		}
		if err := assets.SniffImage(data); err != nil {
			return assets.Source{}, err
		}
		return assets.Source{Data: data, MimeType: mimeType}, nil
	}

	if allowFilePath {
		var body struct {
			FilePath string `json:"filePath"`
		}
		if err := decodeJSON(r, &body); err == nil && strings.TrimSpace(body.FilePath) != "" {
			return assets.Source{RemotePath: strings.TrimSpace(body.FilePath)}, nil
		}
		return assets.Source{}, xerrors.ErrUploadSourceReq
	}

	return assets.Source{}, xerrors.ErrNoFileUploaded
}

// writeError is the single translation point from service errors to
// HTTP statuses. Unknown errors are logged with request context and
// redacted to a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var vErr *xerrors.ValidationError
	if errors.As(err, &vErr) {
		response.ErrorWithDetails(w, http.StatusBadRequest, vErr.Error(), vErr.Fields)
		return
	}

	switch {
	// conflicts surface as 400, matching the public API contract
	case errors.Is(err, xerrors.ErrEmailAlreadyInUse),
		errors.Is(err, xerrors.ErrCompanyExists),
		errors.Is(err, xerrors.ErrInvalidRequest),
		errors.Is(err, xerrors.ErrNoFileUploaded),
		errors.Is(err, xerrors.ErrNotAnImage),
		errors.Is(err, xerrors.ErrFileTooLarge),
		errors.Is(err, xerrors.ErrUploadSourceReq),
		errors.Is(err, xerrors.ErrUserIDRequired),
		errors.Is(err, xerrors.ErrUploadFailed):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrInvalidToken),
		errors.Is(err, xerrors.ErrMissingToken):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrCompanyNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		response.Error(w, http.StatusServiceUnavailable, "Upstream service timed out")
	default:
		logger.Error("unhandled request error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
