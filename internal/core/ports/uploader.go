package ports

import "context"

// MediaUploader stores an uploaded file on the media host and returns its
// durable public URL. An empty URL without an error is still a failure to
// callers that require the asset.
type MediaUploader interface {
	Upload(ctx context.Context, file *FileUpload) (string, error)
}
