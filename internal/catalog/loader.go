package catalog

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_loader.go -package=mocks vato-reader/internal/catalog Loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

var (
	// ErrUnavailable is returned when the catalog resource cannot be reached
	// or answers with a non-success status.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrMalformed is returned when the catalog is not a JSON array of records.
	ErrMalformed = errors.New("catalog malformed")
)

// Loader loads the flat record catalog.
type Loader interface {
	// Load returns every record in the order the resource lists them.
	Load(ctx context.Context) ([]VatRecord, error)
}

// HTTPLoader fetches the catalog from a fixed URL.
type HTTPLoader struct {
	URL    string
	client *http.Client
}

// NewHTTPLoader creates a loader for the catalog at url.
// A nil client falls back to http.DefaultClient.
func NewHTTPLoader(url string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{
		URL:    url,
		client: client,
	}
}

// Load fetches and decodes the catalog. It does not retry.
func (l *HTTPLoader) Load(ctx context.Context) ([]VatRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: bad status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	}

	return decode(resp.Body)
}

// FileLoader reads the catalog from a file on disk.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the catalog file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load reads and decodes the catalog file.
func (l *FileLoader) Load(ctx context.Context) ([]VatRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return decode(f)
}

func decode(r io.Reader) ([]VatRecord, error) {
	var records []VatRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if records == nil {
		// A literal null decodes without error but is not an array.
		return nil, fmt.Errorf("%w: expected an array of records", ErrMalformed)
	}
	return records, nil
}
