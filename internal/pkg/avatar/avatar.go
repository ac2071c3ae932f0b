package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// ErrUpstream is returned when the thumbnail source cannot be fetched or decoded.
var ErrUpstream = errors.New("failed to load avatar")

// maxSourceBytes bounds how much of a remote image is read.
const maxSourceBytes = 5 << 20

// Thumbnailer fetches remote avatar images and resizes them for list rows.
type Thumbnailer struct {
	httpClient *http.Client
	size       int
}

// NewThumbnailer creates a Thumbnailer producing size x size images.
func NewThumbnailer(httpClient *http.Client, size int) *Thumbnailer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Thumbnailer{
		httpClient: httpClient,
		size:       size,
	}
}

// Size returns the edge length of produced thumbnails.
func (t *Thumbnailer) Size() int {
	return t.size
}

// Thumbnail downloads the image at url and returns it as a square JPEG.
// Results are not cached.
func (t *Thumbnailer) Thumbnail(ctx context.Context, url string) (io.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	return t.Resize(io.LimitReader(resp.Body, maxSourceBytes))
}

// Resize decodes content and crops it to a centered square of the
// configured size. It returns the result encoded as JPEG.
func (t *Thumbnailer) Resize(content io.Reader) (io.Reader, error) {
	img, err := imaging.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrUpstream, err)
	}

	thumb := imaging.Fill(img, t.size, t.size, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}
