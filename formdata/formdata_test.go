package formdata_test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/rise-and-shine/iconreg/formdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundary(t *testing.T) {
	t.Parallel()

	b, err := formdata.Boundary("multipart/form-data; boundary=----WebKitFormBoundaryX")
	require.NoError(t, err)
	assert.Equal(t, "----WebKitFormBoundaryX", b)

	b, err = formdata.Boundary(`multipart/form-data; boundary="quoted-value"`)
	require.NoError(t, err)
	assert.Equal(t, "quoted-value", b)

	_, err = formdata.Boundary("application/json")
	require.Error(t, err)
}

func TestParse_StandardWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("title", "My favicon"))

	fw, err := w.CreateFormFile("file", "icon.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A})
	require.NoError(t, err)

	require.NoError(t, w.Close())

	form := formdata.Parse(buf.Bytes(), w.Boundary())
	require.Len(t, form.Parts, 2)

	title, ok := form.Field("title")
	require.True(t, ok)
	assert.Equal(t, "My favicon", title)

	file, ok := form.File("file")
	require.True(t, ok)
	assert.Equal(t, "icon.png", file.Filename)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, file.Content)
}

func TestParse_DropsNamelessParts(t *testing.T) {
	t.Parallel()

	body := "--b1\r\n" +
		"Content-Disposition: form-data\r\n" +
		"\r\n" +
		"orphan\r\n" +
		"--b1\r\n" +
		`Content-Disposition: form-data; name="kept"` + "\r\n" +
		"\r\n" +
		"value\r\n" +
		"--b1--\r\n"

	form := formdata.Parse([]byte(body), "b1")
	require.Len(t, form.Parts, 1)

	v, ok := form.Field("kept")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestParse_DropsPartsWithoutHeaderSeparator(t *testing.T) {
	t.Parallel()

	body := "--b1\r\n" +
		`Content-Disposition: form-data; name="broken"` + "\r\n" +
		"--b1--\r\n"

	form := formdata.Parse([]byte(body), "b1")
	assert.Empty(t, form.Parts)
}

func TestParse_LFOnlyBody(t *testing.T) {
	t.Parallel()

	body := "--b1\n" +
		`Content-Disposition: form-data; name="field"` + "\n" +
		"\n" +
		"hello\n" +
		"--b1--\n"

	form := formdata.Parse([]byte(body), "b1")
	require.Len(t, form.Parts, 1)

	v, ok := form.Field("field")
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestParse_FilePartContentType(t *testing.T) {
	t.Parallel()

	body := "--b1\r\n" +
		`Content-Disposition: form-data; name="file"; filename="a.gif"` + "\r\n" +
		"Content-Type: image/gif\r\n" +
		"\r\n" +
		"GIF89a\r\n" +
		"--b1--\r\n"

	form := formdata.Parse([]byte(body), "b1")

	file, ok := form.File("file")
	require.True(t, ok)
	assert.Equal(t, "image/gif", file.ContentType)
	assert.Equal(t, []byte("GIF89a"), file.Content)
}

func TestParseDataURL(t *testing.T) {
	t.Parallel()

	mediaType, data, err := formdata.ParseDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte("hello"), data)
}

func TestParseDataURL_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{name: "missing prefix", input: "image/png;base64,aGVsbG8="},
		{name: "missing comma", input: "data:image/png;base64"},
		{name: "not base64 marked", input: "data:image/png,aGVsbG8="},
		{name: "bad payload", input: "data:image/png;base64,!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := formdata.ParseDataURL(tc.input)
			require.Error(t, err)
		})
	}
}
