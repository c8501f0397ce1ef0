package assets

import (
	"bytes"
	"image"

	_ "image/gif"  // register gif
	_ "image/jpeg" // register jpeg
	_ "image/png"  // register png

	_ "golang.org/x/image/webp" // register webp

	xerrors "company-service/pkg/xerrors"
)

// SniffImage verifies the buffer actually decodes as a supported image,
// beyond the client-declared mime type.
func SniffImage(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return xerrors.ErrNotAnImage
	}
	return nil
}
