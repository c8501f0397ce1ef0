package assets_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"company-service/internal/service/assets"
	xerrors "company-service/pkg/xerrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.Nil(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.Nil(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
	return buf.Bytes()
}

func TestSniffImage(t *testing.T) {
	require.Nil(t, assets.SniffImage(encodePNG(t)))
	require.Nil(t, assets.SniffImage(encodeJPEG(t)))

	require.ErrorIs(t, assets.SniffImage([]byte("definitely not an image")), xerrors.ErrNotAnImage)
	require.ErrorIs(t, assets.SniffImage(nil), xerrors.ErrNotAnImage)
}

func TestLocalUploaderStoresBuffer(t *testing.T) {
	dir := t.TempDir()
	up, err := assets.NewLocalUploader(dir, zap.NewNop())
	require.Nil(t, err)

	src := assets.Source{Data: encodePNG(t), MimeType: "image/png"}
	url, err := up.Upload(context.Background(), src, "company-module/logos")
	require.Nil(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/logos/"))

	stored := filepath.Join(dir, "logos", filepath.Base(url))
	data, err := os.ReadFile(stored)
	require.Nil(t, err)
	require.Equal(t, src.Data, data)
}

func TestLocalUploaderPassesThroughRemote(t *testing.T) {
	up, err := assets.NewLocalUploader(t.TempDir(), zap.NewNop())
	require.Nil(t, err)

	src := assets.Source{RemotePath: "https://elsewhere.example.com/logo.png"}
	url, err := up.Upload(context.Background(), src, "company-module/logos")
	require.Nil(t, err)
	require.Equal(t, src.RemotePath, url)
}
