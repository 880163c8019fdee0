package builders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// buildUserAgent identifies the build pipeline to the FAA servers.
const buildUserAgent = "ReadBack/1.0 (aviation data build)"

// arcgisFeature mirrors one entry of an FAA ArcGIS FeatureServer query
// response; attribute values arrive as mixed JSON types.
type arcgisFeature struct {
	Attributes map[string]any `json:"attributes"`
}

type arcgisResponse struct {
	Features []arcgisFeature `json:"features"`
}

// attr returns the first present, non-empty string attribute among keys.
// ArcGIS layers are inconsistent about attribute casing.
func (f arcgisFeature) attr(keys ...string) string {
	for _, k := range keys {
		if v, ok := f.Attributes[k]; ok {
			if s, ok := v.(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			}
		}
	}
	return ""
}

func defaultBuildClient() *http.Client {
	return &http.Client{Timeout: 120 * time.Second}
}

// fetchArcGIS performs one GET against an ArcGIS query URL and decodes
// the feature list.
func fetchArcGIS(ctx context.Context, client *http.Client, url string) ([]arcgisFeature, error) {
	if client == nil {
		client = defaultBuildClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", buildUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded arcgisResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Features, nil
}
