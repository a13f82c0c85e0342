package imagehost

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"hajjapply/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	t.Setenv("IMAGE_HOST_UPLOAD_URL", serverURL)
	t.Setenv("IMAGE_HOST_UPLOAD_PRESET", "hajj_unsigned")
	t.Setenv("IMAGE_HOST_FOLDER", "HajjImages/Uploads")
	return NewClient(nil)
}

func TestUpload(t *testing.T) {
	t.Run("posts multipart form and returns the secure url", func(t *testing.T) {
		var gotPreset, gotFolder, gotFilename string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(32<<20))
			gotPreset = r.FormValue("upload_preset")
			gotFolder = r.FormValue("folder")

			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			gotFilename = header.Filename

			w.Write([]byte(`{"secure_url":"https://img.example/hajj/abc.png"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		var lastPct int
		url, err := client.Upload(context.Background(), "pilgrim.png", pngBytes(t, 8, 8), func(pct int) {
			lastPct = pct
		})
		require.NoError(t, err)

		assert.Equal(t, "https://img.example/hajj/abc.png", url)
		assert.Equal(t, "hajj_unsigned", gotPreset)
		assert.Equal(t, "HajjImages/Uploads", gotFolder)
		assert.Equal(t, "pilgrim.png", gotFilename)
		assert.Equal(t, 100, lastPct)
	})

	t.Run("remote failure carries the host message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"upload preset not allowed"}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Upload(context.Background(), "pilgrim.png", pngBytes(t, 8, 8), nil)
		require.Error(t, err)

		var upErr *domain.UploadError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusBadRequest, upErr.Status)
		assert.Contains(t, upErr.Error(), "upload preset not allowed")
	})

	t.Run("garbled success body is still a typed failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Upload(context.Background(), "pilgrim.png", pngBytes(t, 8, 8), nil)
		require.Error(t, err)

		var upErr *domain.UploadError
		require.ErrorAs(t, err, &upErr)
		assert.Contains(t, upErr.Error(), "unreadable response")
	})

	t.Run("rejects non-image payloads before any transfer", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:0")

		_, err := client.Upload(context.Background(), "notes.txt", []byte("just some text"), nil)
		require.Error(t, err)

		var upErr *domain.UploadError
		require.ErrorAs(t, err, &upErr)
		assert.Contains(t, upErr.Error(), "unsupported image type")
	})

	t.Run("rejects oversized payloads before any transfer", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:0")

		_, err := client.Upload(context.Background(), "huge.png", make([]byte, MaxUploadBytes+1), nil)
		require.Error(t, err)

		var upErr *domain.UploadError
		require.ErrorAs(t, err, &upErr)
		assert.Contains(t, upErr.Error(), "limit")
	})
}

func TestDownscale(t *testing.T) {
	t.Run("small images pass through untouched", func(t *testing.T) {
		original := pngBytes(t, 100, 80)

		out, err := Downscale(original)
		require.NoError(t, err)
		assert.Equal(t, original, out)
	})

	t.Run("large images are bounded on the longer edge", func(t *testing.T) {
		out, err := Downscale(pngBytes(t, 2000, 500))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 1600, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	})

	t.Run("portrait images bound on height", func(t *testing.T) {
		out, err := Downscale(pngBytes(t, 500, 2000))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 1600, img.Bounds().Dy())
	})
}
