package builders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// FAANASRIndexURL is the FAA page announcing the effective date of the
// current 28-day NASR subscription cycle.
const FAANASRIndexURL = "https://www.faa.gov/air_traffic/flight_info/aeronav/aero_data/NASR_Subscription/"

// "Subscription effective February 19, 2026" -> 2026-02-19
var cyclePattern = regexp.MustCompile(`(?i)Subscription effective\s+(\w+)\s+(\d{1,2}),\s+(\d{4})`)

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

// CurrentFAACycle scrapes the NASR subscription page and returns the
// effective cycle date as YYYY-MM-DD. The result is used only for
// operator advice and manifest authoring; the client treats cycles as
// opaque tokens.
func CurrentFAACycle(ctx context.Context, client *http.Client, indexURL string) (string, error) {
	if indexURL == "" {
		indexURL = FAANASRIndexURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ReadBack/1.0 (FAA cycle check)")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch FAA page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch FAA page: HTTP %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read FAA page: %w", err)
	}

	return parseCycleFromPage(string(page))
}

func parseCycleFromPage(page string) (string, error) {
	m := cyclePattern.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no subscription effective date found")
	}
	month, ok := monthNumbers[strings.ToLower(m[1])]
	if !ok {
		return "", fmt.Errorf("unrecognized month %q", m[1])
	}
	day := m[2]
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", m[3], month, day), nil
}
