package formdata

import (
	"encoding/base64"
	"strings"

	"github.com/code19m/errx"
)

// ParseDataURL decodes a base64 data URL of the form
// `data:image/png;base64,AAAA...` and returns the declared media type
// together with the decoded bytes.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errx.New(
			"Invalid data URL format",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidDataURL),
		)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errx.New(
			"Invalid data URL format",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidDataURL),
		)
	}

	if !strings.Contains(header, "base64") {
		return "", nil, errx.New(
			"Data URL must be base64 encoded",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidDataURL),
		)
	}

	mediaType, _, _ := strings.Cut(header, ";")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidDataURL),
		)
	}

	return mediaType, data, nil
}
