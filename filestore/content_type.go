package filestore

import (
	"strings"

	"github.com/rise-and-shine/iconreg/validation"
)

// Common MIME content types for stored favicon binaries.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	ContentTypeGIF  = "image/gif"
	ContentTypeSVG  = "image/svg+xml"
	ContentTypeICO  = "image/x-icon"

	ContentTypeOctetStream = "application/octet-stream"
)

//nolint:gochecknoglobals // static lookup table shared across calls
var extContentTypes = map[string]string{
	"png":  ContentTypePNG,
	"jpg":  ContentTypeJPEG,
	"jpeg": ContentTypeJPEG,
	"gif":  ContentTypeGIF,
	"svg":  ContentTypeSVG,
	"ico":  ContentTypeICO,
}

// ContentTypeFromExtension maps a file extension (without the dot, any case)
// to its MIME type, falling back to application/octet-stream.
func ContentTypeFromExtension(ext string) string {
	if ct, ok := extContentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return ContentTypeOctetStream
}

// DetectContentType sniffs a MIME type from the buffer's magic bytes.
// Stored keys do not always carry an extension, so this is used as the
// fallback when serving binaries. Unrecognized content yields
// application/octet-stream.
func DetectContentType(data []byte) string {
	mime, err := validation.DetectImageType(data)
	if err != nil {
		return ContentTypeOctetStream
	}
	return mime
}
