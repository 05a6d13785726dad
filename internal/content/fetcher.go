package content

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_fetcher.go -package=mocks vato-reader/internal/content Fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnavailable is returned when a document cannot be fetched.
var ErrUnavailable = errors.New("document unavailable")

// Fetcher retrieves the rendered document of a vat.
type Fetcher interface {
	Fetch(ctx context.Context, chapterID int, documentName string) ([]byte, error)
}

// DocumentPath returns the slash-separated location of a document relative
// to the document root, e.g. "chapter3/vat_3_1.html".
func DocumentPath(chapterID int, documentName string) (string, error) {
	name := strings.TrimSpace(documentName)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid document name %q", documentName)
	}
	return path.Join(fmt.Sprintf("chapter%d", chapterID), name), nil
}

// HTTPFetcher fetches documents below a base URL.
type HTTPFetcher struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for documents under baseURL.
// A nil client falls back to http.DefaultClient.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Fetch downloads the document. It does not retry.
func (f *HTTPFetcher) Fetch(ctx context.Context, chapterID int, documentName string) ([]byte, error) {
	rel, err := DocumentPath(chapterID, documentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	u := fmt.Sprintf("%s/chapter%d/%s", f.BaseURL, chapterID, url.PathEscape(path.Base(rel)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: bad status %d for %s", ErrUnavailable, resp.StatusCode, rel)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrUnavailable, err)
	}
	return body, nil
}

// FileFetcher reads documents from a directory tree.
type FileFetcher struct {
	Root string
}

// NewFileFetcher creates a fetcher for documents under root.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{Root: root}
}

// Fetch reads the document from disk.
func (f *FileFetcher) Fetch(ctx context.Context, chapterID int, documentName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := DocumentPath(chapterID, documentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	abs, err := buildAbsPath(f.Root, rel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return data, nil
}

func buildAbsPath(root, rel string) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve document root: %w", err)
	}
	abs := filepath.Join(root, filepath.FromSlash(rel))

	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", errors.New("path escapes document root")
	}
	return abs, nil
}
