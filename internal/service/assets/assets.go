// Package assets uploads logo/banner images to the external image host
// and hands back hosted URLs. The uploader is selected at startup
// (Cloudinary when configured, local disk otherwise) and injected into
// the company usecase.
package assets

import "context"

// Source is either an in-memory image buffer with its declared mime
// type, or a remote URL / local path for the host to fetch.
type Source struct {
	Data       []byte
	MimeType   string
	RemotePath string
}

func (s Source) IsBuffer() bool { return len(s.Data) > 0 }

type Uploader interface {
	// Upload stores the image under folder and returns its hosted URL.
	// One call, one explicit timeout, no retries: a retry could
	// double-upload assets.
	Upload(ctx context.Context, src Source, folder string) (string, error)
}
