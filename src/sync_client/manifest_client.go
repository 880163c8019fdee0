// Package sync_client implements the client side of the reference-data
// update protocol: manifest retrieval, staged concurrent file downloads,
// structural validation, and the state machine that drives one update
// attempt end to end against a data_store.
package sync_client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

// DefaultUserAgent identifies the client to the data server.
const DefaultUserAgent = "ReadBack/1.0 (aviation data sync)"

// ManifestClient fetches documents from a configured base location over
// plain HTTP GET. It has no side effects beyond the network call and
// never writes to the datastore.
type ManifestClient struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewManifestClient returns a client with a 30-second default timeout.
func NewManifestClient(baseURL string) *ManifestClient {
	return &ManifestClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  DefaultUserAgent,
	}
}

// FetchManifest retrieves and validates the manifest document. An empty
// base URL fails with ErrConfig before any network I/O.
func (c *ManifestClient) FetchManifest(ctx context.Context) (avdata.Manifest, error) {
	body, err := c.get(ctx, avdata.ManifestFileName)
	if err != nil {
		return avdata.Manifest{}, err
	}
	return avdata.ParseManifest(body)
}

// FetchFile retrieves one dataset file by its manifest-relative path and
// writes it to destPath.
func (c *ManifestClient) FetchFile(ctx context.Context, relPath, destPath string) error {
	body, err := c.get(ctx, relPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destPath, body, 0644); err != nil {
		return fmt.Errorf("failed to write staged file: %w", err)
	}
	return nil
}

// get performs one GET of baseURL + "/" + relPath with protocol error
// classification. Exactly one separator is inserted regardless of
// trailing slashes on the base URL.
func (c *ManifestClient) get(ctx context.Context, relPath string) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("%w: data server base URL is not set", avdata.ErrConfig)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(relPath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request for %s: %v", avdata.ErrNetwork, url, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: fetch %s: %v", avdata.ErrCancelled, relPath, ctxErr)
		}
		return nil, fmt.Errorf("%w: fetch %s: %v", avdata.ErrNetwork, relPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch %s: HTTP %d", avdata.ErrNetwork, relPath, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: fetch %s: %v", avdata.ErrCancelled, relPath, err)
		}
		return nil, fmt.Errorf("%w: read %s: %v", avdata.ErrNetwork, relPath, err)
	}
	return body, nil
}
