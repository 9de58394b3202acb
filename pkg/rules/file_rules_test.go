package rules_test

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/form"
)

func pngFile(t *testing.T, name string, w, h int) form.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	data := buf.Bytes()
	return form.File{
		Name: name,
		Size: int64(len(data)),
		MIME: "image/png",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func upload(attr, attrValue string, files ...form.File) *form.Control {
	return form.NewControl("avatar", form.TypeFile, form.WithFiles(files...), form.WithAttr(attr, attrValue))
}

func TestFileRules(t *testing.T) {
	t.Run("ext normalizes the allowed list", func(t *testing.T) {
		assert.True(t, validate(t, upload("ext", "png, .JPG", form.File{Name: "me.jpg"})).IsValid)

		res := validate(t, upload("ext", "png,jpg", form.File{Name: "me.png"}, form.File{Name: "cv.pdf"}))
		assert.False(t, res.IsValid)
		assert.Equal(t, "File extension must be one of: png and jpg.", res.Message)
	})

	t.Run("mimes", func(t *testing.T) {
		res := validate(t, upload("mimes", "image/png", form.File{Name: "a.gif", MIME: "image/gif"}))
		assert.Equal(t, "File type must be one of: image/png.", res.Message)
	})

	t.Run("max size", func(t *testing.T) {
		assert.True(t, validate(t, upload("max-size", "2048", form.File{Name: "a", Size: 2048})).IsValid)

		res := validate(t, upload("max-size", "2048", form.File{Name: "a", Size: 2049}))
		assert.Equal(t, "File size must not exceed 2 KB.", res.Message)
	})

	t.Run("non file controls pass", func(t *testing.T) {
		assert.True(t, validate(t, text("a.exe", "ext", "png")).IsValid)
	})

	t.Run("image width and height", func(t *testing.T) {
		img := pngFile(t, "a.png", 20, 10)

		assert.True(t, validate(t, upload("min-width", "20", img)).IsValid)
		res := validate(t, upload("min-width", "21", img))
		assert.Equal(t, "Image width must be at least 21px.", res.Message)

		res = validate(t, upload("max-height", "5", img))
		assert.Equal(t, "Image height must not exceed 5px.", res.Message)
		assert.True(t, validate(t, upload("min-height", "10", img)).IsValid)
		assert.True(t, validate(t, upload("max-width", "20", img)).IsValid)
	})

	t.Run("undecodable images pass", func(t *testing.T) {
		broken := form.File{
			Name: "a.png",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader([]byte("nope"))), nil
			},
		}
		assert.True(t, validate(t, upload("min-width", "100", broken)).IsValid)
		assert.True(t, validate(t, upload("min-width", "100", form.File{Name: "b.png"})).IsValid)
	})
}
