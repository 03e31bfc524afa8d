// Package validation provides pure content validators for inbound favicon
// submissions: size ceilings, image type classification by magic bytes,
// domain name syntax and metadata length checks.
//
// All validators are side-effect free and report failures as a single
// validation-typed errx error carrying a descriptive message.
package validation

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/code19m/errx"
)

// MaxFileSize is the upper bound for submitted image buffers (0.5 MB).
const MaxFileSize = 512 * 1024

// MaxDomainLength is the upper bound for target domain names.
const MaxDomainLength = 256

// MaxMetadataLength is the upper bound for free-form metadata strings.
// Chosen so the value stays embeddable in image metadata fields.
const MaxMetadataLength = 256

// Supported image MIME types as classified by DetectImageType.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeGIF  = "image/gif"
	MimeICO  = "image/x-icon"
	MimeSVG  = "image/svg+xml"
)

// domainRegex enforces label syntax: alphanumeric labels up to 63 chars,
// hyphens allowed inside, at least one dot-separated label after the first.
var domainRegex = regexp.MustCompile(
	`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`,
)

// CheckFileSize rejects buffers over MaxFileSize.
func CheckFileSize(size int) error {
	if size > MaxFileSize {
		sizeMB := float64(size) / (1024.0 * 1024.0)
		return errx.New(
			fmt.Sprintf("File size (%.2fMB) exceeds the maximum allowed size of 0.5 MB", sizeMB),
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeFileTooLarge),
		)
	}
	return nil
}

// DetectImageType classifies a byte buffer by its leading magic bytes and
// returns the corresponding MIME type. Buffers under 4 bytes or matching no
// supported signature are rejected.
func DetectImageType(buffer []byte) (string, error) {
	if len(buffer) < 4 {
		return "", errx.New(
			"File is too small to be a valid image",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeNotAnImage),
		)
	}

	switch {
	case bytes.HasPrefix(buffer, []byte{0x89, 0x50, 0x4E, 0x47}):
		return MimePNG, nil
	case bytes.HasPrefix(buffer, []byte{0xFF, 0xD8, 0xFF}):
		return MimeJPEG, nil
	case bytes.HasPrefix(buffer, []byte{0x47, 0x49, 0x46}):
		return MimeGIF, nil
	case bytes.HasPrefix(buffer, []byte{0x00, 0x00, 0x01, 0x00}):
		return MimeICO, nil
	}

	// SVG has no binary signature: look for an <svg or <?xml prefix within
	// the first 100 bytes, ignoring leading whitespace.
	head := buffer[:min(len(buffer), 100)]
	trimmed := strings.TrimSpace(string(head))
	if strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml") {
		return MimeSVG, nil
	}

	return "", errx.New(
		"Only image files are allowed (PNG, JPEG, GIF, SVG, ICO)",
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeNotAnImage),
	)
}

// ValidateDomain checks domain name syntax: at most MaxDomainLength
// characters, at least one dot with non-empty labels on both sides, and
// TLD-style label syntax.
func ValidateDomain(domain string) error {
	if len(domain) > MaxDomainLength {
		return domainErr("Domain name must not exceed 256 characters")
	}

	if !strings.Contains(domain, ".") {
		return domainErr("Domain name must contain at least one dot (.)")
	}

	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return domainErr(`Domain name cannot have empty parts (e.g., "example..com")`)
		}
	}

	if !domainRegex.MatchString(domain) {
		return domainErr(
			"Invalid domain name format. Domain must contain only letters, numbers, hyphens, and dots, and follow TLD syntax",
		)
	}

	return nil
}

// ValidateMetadata rejects metadata strings over MaxMetadataLength characters.
func ValidateMetadata(metadata string) error {
	if len(metadata) > MaxMetadataLength {
		return errx.New(
			"Metadata must not exceed 256 characters",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeMetadataTooLong),
		)
	}
	return nil
}

func domainErr(msg string) error {
	return errx.New(msg, errx.WithType(errx.T_Validation), errx.WithCode(CodeInvalidDomain))
}
