package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/iconreg/validation"
)

func TestCheckFileSize(t *testing.T) {
	assert.NoError(t, validation.CheckFileSize(1024))
	assert.NoError(t, validation.CheckFileSize(512*1024))
	assert.Error(t, validation.CheckFileSize(512*1024+1))
}

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name     string
		buffer   []byte
		expected string
		wantErr  bool
	}{
		{
			name:     "png",
			buffer:   []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			expected: "image/png",
		},
		{
			name:     "jpeg",
			buffer:   []byte{0xFF, 0xD8, 0xFF, 0xE0},
			expected: "image/jpeg",
		},
		{
			name:     "gif",
			buffer:   []byte("GIF89a"),
			expected: "image/gif",
		},
		{
			name:     "ico",
			buffer:   []byte{0x00, 0x00, 0x01, 0x00},
			expected: "image/x-icon",
		},
		{
			name:     "svg",
			buffer:   []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
			expected: "image/svg+xml",
		},
		{
			name:     "svg with xml declaration",
			buffer:   []byte(`<?xml version="1.0"?><svg></svg>`),
			expected: "image/svg+xml",
		},
		{
			name:     "svg with leading whitespace",
			buffer:   []byte("\n  \t<svg></svg>"),
			expected: "image/svg+xml",
		},
		{
			name:    "too short",
			buffer:  []byte{0x89, 0x50, 0x4E},
			wantErr: true,
		},
		{
			name:    "unknown signature",
			buffer:  []byte{0xDE, 0xAD, 0xBE, 0xEF},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := validation.DetectImageType(tt.buffer)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mime)
		})
	}
}

func TestValidateDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.com",
		"a-b.example.com",
	}
	for _, domain := range valid {
		assert.NoError(t, validation.ValidateDomain(domain), domain)
	}

	invalid := []string{
		"example",
		"example.",
		".example.com",
		"example..com",
		"-bad.example.com",
		"bad-.example.com",
		strings.Repeat("a", 250) + ".example.com",
	}
	for _, domain := range invalid {
		assert.Error(t, validation.ValidateDomain(domain), domain)
	}
}

func TestValidateMetadata(t *testing.T) {
	assert.NoError(t, validation.ValidateMetadata("short"))
	assert.NoError(t, validation.ValidateMetadata(strings.Repeat("a", 256)))
	assert.Error(t, validation.ValidateMetadata(strings.Repeat("a", 257)))
}

func TestValidateSchema(t *testing.T) {
	type req struct {
		Password string `json:"password" validate:"required"`
	}

	assert.NoError(t, validation.ValidateSchema(req{Password: "secret"}))
	assert.Error(t, validation.ValidateSchema(req{}))
}
