package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotImage means the download succeeded but the body is not a decodable
// image, such as an HTML confirmation page served with status 200.
var ErrNotImage = errors.New("response is not an image")

// DefaultURLTemplate downloads a shared Google Drive file by ID.
const DefaultURLTemplate = "https://drive.google.com/uc?export=download&id={id}"

// Fetcher retrieves the raw bytes of an asset.
type Fetcher interface {
	Fetch(ctx context.Context, assetID string) ([]byte, error)
}

// FetchError means a background asset could not be downloaded.
type FetchError struct {
	AssetID string
	URL     string
	Status  int
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch asset %s: %v", e.AssetID, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch asset %s: unexpected status %d", e.AssetID, e.Status)
	default:
		return fmt.Sprintf("fetch asset %s: empty response", e.AssetID)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPFetcher downloads assets over HTTP using a URL template containing {id}.
type HTTPFetcher struct {
	Client      *http.Client
	URLTemplate string
	MaxBytes    int64
}

func NewHTTPFetcher(urlTemplate string, timeout time.Duration) *HTTPFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	return &HTTPFetcher{
		Client:      &http.Client{Timeout: timeout},
		URLTemplate: urlTemplate,
		MaxBytes:    32 << 20,
	}
}

// URL returns the download address of an asset.
func (f *HTTPFetcher) URL(assetID string) string {
	return strings.ReplaceAll(f.URLTemplate, "{id}", url.QueryEscape(assetID))
}

func (f *HTTPFetcher) Fetch(ctx context.Context, assetID string) ([]byte, error) {
	u := f.URL(assetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{AssetID: assetID, URL: u, Err: err}
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{AssetID: assetID, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{AssetID: assetID, URL: u, Status: resp.StatusCode}
	}
	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{AssetID: assetID, URL: u, Err: err}
	}
	if len(data) == 0 {
		return nil, &FetchError{AssetID: assetID, URL: u}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, &FetchError{AssetID: assetID, URL: u, Err: fmt.Errorf("%w (content type %q)", ErrNotImage, resp.Header.Get("Content-Type"))}
	}
	return data, nil
}
