package interfaces

import "context"

// MediaUpload describes a binary the media collaborator has accepted.
type MediaUpload struct {
	Name        string
	ContentType string
	Size        int64
}

// MediaDescriptor is the opaque result of a media store operation. The
// catalog only records it; it never interprets or mutates the values.
type MediaDescriptor struct {
	URL    string
	Width  int
	Height int
	Size   int64
	Format string
}

// MediaStore abstracts the external binary storage collaborator (upload,
// transcoding, CDN URL issuance). The catalog consumes descriptors only.
type MediaStore interface {
	Describe(ctx context.Context, upload MediaUpload) (MediaDescriptor, error)
}
