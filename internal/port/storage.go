package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to archive one file under
// a logical destination folder.
type UploadInput struct {
	Folder      string
	FileName    string
	Body        io.Reader
	ContentType string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the archival sink. Folder creation is implicit:
// implementations treat the folder as a key prefix.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
