package builders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCycleFromPage(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    string
		wantErr bool
	}{
		{
			name: "plain announcement",
			page: `<p>Subscription effective February 19, 2026.</p>`,
			want: "2026-02-19",
		},
		{
			name: "single digit day padded",
			page: `Subscription effective March 5, 2026`,
			want: "2026-03-05",
		},
		{
			name: "case insensitive",
			page: `SUBSCRIPTION EFFECTIVE january 22, 2026`,
			want: "2026-01-22",
		},
		{
			name:    "no announcement",
			page:    `<html>nothing to see</html>`,
			wantErr: true,
		},
		{
			name:    "unknown month",
			page:    `Subscription effective Smarch 1, 2026`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCycleFromPage(tc.page)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("cycle = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCurrentFAACycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<h2>NASR Subscription</h2>
			<p>Subscription effective February 19, 2026</p>
		</body></html>`))
	}))
	defer server.Close()

	cycle, err := CurrentFAACycle(context.Background(), nil, server.URL)
	if err != nil {
		t.Fatalf("CurrentFAACycle failed: %v", err)
	}
	if cycle != "2026-02-19" {
		t.Errorf("cycle = %q, want 2026-02-19", cycle)
	}
}

func TestCurrentFAACycleServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := CurrentFAACycle(context.Background(), nil, server.URL); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}
