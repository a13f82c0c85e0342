// Package imagehost uploads captured photos to the third-party image
// endpoint and reports transfer progress to the caller.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"hajjapply/config"
	"hajjapply/domain"

	"golang.org/x/image/draw"
)

const (
	// MaxUploadBytes caps a single photo payload before any transfer
	// starts.
	MaxUploadBytes = 10 * 1024 * 1024

	// maxDimension bounds the longer image edge; larger captures are
	// downscaled before upload.
	maxDimension = 1600
)

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type ProgressFunc func(percent int)

type Client struct {
	httpClient   *http.Client
	uploadURL    string
	uploadPreset string
	folder       string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		httpClient:   httpClient,
		uploadURL:    config.GetImageHostUploadURL(),
		uploadPreset: config.GetImageHostUploadPreset(),
		folder:       config.GetImageHostFolder(),
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// progressReader reports consumed bytes as a percentage of the known total.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	progress ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if pr.progress != nil && pr.total > 0 {
		pct := int(pr.read * 100 / pr.total)
		if pct > 100 {
			pct = 100
		}
		if pct != pr.lastPct {
			pr.lastPct = pct
			pr.progress(pct)
		}
	}
	return n, err
}

// Upload posts one image as multipart form data and returns the hosted
// secure URL. The payload is validated and downscaled before the request is
// built, so an oversized or non-image body never leaves the process.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, onProgress ProgressFunc) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", &domain.UploadError{Message: fmt.Sprintf("image exceeds the %dMB limit", MaxUploadBytes/(1024*1024))}
	}

	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return "", &domain.UploadError{Message: fmt.Sprintf("unsupported image type %s", contentType)}
	}

	data, err := Downscale(data)
	if err != nil {
		return "", &domain.UploadError{Message: err.Error()}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", err
	}
	if err := mw.WriteField("folder", c.folder); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	pr := &progressReader{
		r:        &body,
		total:    int64(body.Len()),
		progress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = pr.total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil && resp.StatusCode == http.StatusOK {
		return "", &domain.UploadError{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.UploadError{Status: resp.StatusCode, Message: parsed.Error.Message}
	}
	if parsed.SecureURL == "" {
		return "", &domain.UploadError{Status: resp.StatusCode, Message: "response carried no secure_url"}
	}

	if onProgress != nil {
		onProgress(100)
	}

	return parsed.SecureURL, nil
}

// Downscale bounds the longer edge of a PNG or JPEG to the upload limit,
// re-encoding as PNG. Images already within bounds pass through untouched.
func Downscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %v", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDimension && h <= maxDimension {
		return data, nil
	}

	scale := float64(maxDimension) / float64(w)
	if h > w {
		scale = float64(maxDimension) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("could not encode image: %v", err)
	}

	return buf.Bytes(), nil
}
