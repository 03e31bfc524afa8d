// Package formdata decodes raw multipart/form-data bodies.
//
// The decoder is a deliberate byte-boundary scanner rather than a wrapper
// around mime/multipart: parts that are malformed (missing the blank line
// separating headers from content, or missing a name attribute) are silently
// dropped instead of failing the whole body, so truncated uploads degrade by
// omission. Callers that need hard failures check for the absence of the
// parts they require.
package formdata

import (
	"bytes"
	"strings"

	"github.com/code19m/errx"
)

// Part is a single decoded multipart section: either a plain field
// (Filename empty) or a file part.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// Form holds the decoded parts of a multipart body in order of appearance.
type Form struct {
	Parts []Part
}

// Boundary extracts the boundary token from a multipart Content-Type header
// value, e.g. `multipart/form-data; boundary=----abc`.
func Boundary(contentType string) (string, error) {
	for _, part := range strings.Split(contentType, ";") {
		trimmed := strings.TrimSpace(part)
		if strings.HasPrefix(trimmed, "boundary=") {
			return strings.Trim(trimmed[len("boundary="):], `"`), nil
		}
	}
	return "", errx.New(
		"Missing boundary in Content-Type",
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeMissingBoundary),
	)
}

// Parse scans a raw body for successive `--{boundary}` delimiters and decodes
// the sections between them. A terminal `--{boundary}--` stops the scan.
func Parse(body []byte, boundary string) *Form {
	delimiter := []byte("--" + boundary)
	form := &Form{}
	pos := 0

	for pos < len(body) {
		start := bytes.Index(body[pos:], delimiter)
		if start < 0 {
			break
		}

		contentStart := pos + start + len(delimiter)
		if contentStart >= len(body) {
			break
		}

		// Terminal delimiter.
		if bytes.HasPrefix(body[contentStart:], []byte("--")) {
			break
		}

		headerStart := contentStart + newlineLen(body[contentStart:])

		next := bytes.Index(body[headerStart:], delimiter)
		partEnd := len(body)
		if next >= 0 {
			partEnd = headerStart + next
		}

		if part, ok := parsePart(body[headerStart:partEnd]); ok {
			form.Parts = append(form.Parts, part)
		}

		pos = partEnd
	}

	return form
}

// Field returns the UTF-8 value of the first plain field with the given name.
func (f *Form) Field(name string) (string, bool) {
	for _, p := range f.Parts {
		if p.Name == name {
			return string(p.Content), true
		}
	}
	return "", false
}

// File returns the first file-bearing part with the given name.
func (f *Form) File(name string) (*Part, bool) {
	for i := range f.Parts {
		if f.Parts[i].Name == name && f.Parts[i].Filename != "" {
			return &f.Parts[i], true
		}
	}
	return nil, false
}

// parsePart decodes a single section between delimiters. It reports ok=false
// for sections without a header/content separator or a name attribute.
func parsePart(data []byte) (Part, bool) {
	sepPos, sepLen := blankLine(data)
	if sepPos < 0 {
		return Part{}, false
	}

	content := data[sepPos+sepLen:]
	content = trimTrailingNewline(content)

	part := Part{Content: content}

	for _, line := range strings.Split(string(data[:sepPos]), "\n") {
		line = strings.TrimRight(line, "\r")
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "content-disposition:"):
			for _, attr := range strings.Split(line, ";") {
				attr = strings.TrimSpace(attr)
				if strings.HasPrefix(attr, "name=") {
					part.Name = strings.Trim(attr[len("name="):], `"`)
				} else if strings.HasPrefix(attr, "filename=") {
					part.Filename = strings.Trim(attr[len("filename="):], `"`)
				}
			}
		case strings.HasPrefix(lower, "content-type:"):
			_, value, _ := strings.Cut(line, ":")
			part.ContentType = strings.TrimSpace(value)
		}
	}

	if part.Name == "" {
		return Part{}, false
	}
	return part, true
}

// blankLine finds the CRLF-CRLF (or LF-LF) separator between headers and content.
func blankLine(data []byte) (pos, length int) {
	if p := bytes.Index(data, []byte("\r\n\r\n")); p >= 0 {
		return p, 4
	}
	if p := bytes.Index(data, []byte("\n\n")); p >= 0 {
		return p, 2
	}
	return -1, 0
}

func newlineLen(data []byte) int {
	switch {
	case bytes.HasPrefix(data, []byte("\r\n")):
		return 2
	case bytes.HasPrefix(data, []byte("\n")):
		return 1
	default:
		return 0
	}
}

func trimTrailingNewline(data []byte) []byte {
	if bytes.HasSuffix(data, []byte("\r\n")) {
		return data[:len(data)-2]
	}
	if bytes.HasSuffix(data, []byte("\n")) {
		return data[:len(data)-1]
	}
	return data
}
