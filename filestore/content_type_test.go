package filestore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/iconreg/filestore"
)

func TestContentTypeFromExtension(t *testing.T) {
	assert.Equal(t, "image/png", filestore.ContentTypeFromExtension("png"))
	assert.Equal(t, "image/png", filestore.ContentTypeFromExtension("PNG"))
	assert.Equal(t, "image/jpeg", filestore.ContentTypeFromExtension("jpg"))
	assert.Equal(t, "image/jpeg", filestore.ContentTypeFromExtension("jpeg"))
	assert.Equal(t, "image/svg+xml", filestore.ContentTypeFromExtension("svg"))
	assert.Equal(t, "image/x-icon", filestore.ContentTypeFromExtension("ico"))
	assert.Equal(t, "application/octet-stream", filestore.ContentTypeFromExtension("bin"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", filestore.DetectContentType([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}))
	assert.Equal(t, "image/x-icon", filestore.DetectContentType([]byte{0x00, 0x00, 0x01, 0x00}))
	assert.Equal(t, "application/octet-stream", filestore.DetectContentType([]byte{0x01, 0x02}))
	assert.Equal(t, "application/octet-stream", filestore.DetectContentType([]byte("not an image")))
}
