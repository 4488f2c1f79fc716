package mainline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/harrison/kernelgrep/internal/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.RequestTimeout = 2 * time.Second
	return cfg
}

const listingPage = `<html><body>
<a href="../">Parent Directory</a>
<a href="v6.10/">v6.10/</a>
<a href="v6.2/">v6.2/</a>
<a href="v6.1.1-rc1/">v6.1.1-rc1/</a>
<a href="v6.2/">v6.2/</a>
<a href="daily/">daily/</a>
<a href="README">README</a>
</body></html>`

// TestListDirectories verifies href extraction, dedup, and newest-first order
func TestListDirectories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	dirs, err := client.ListDirectories(context.Background())
	if err != nil {
		t.Fatalf("ListDirectories() error = %v", err)
	}

	want := []string{"v6.10", "v6.2", "v6.1.1-rc1"}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("ListDirectories() = %v, want %v", dirs, want)
	}
}

// TestListDirectoriesSendsUserAgent verifies the browser User-Agent header
func TestListDirectoriesSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.ListDirectories(context.Background()); err != nil {
		t.Fatalf("ListDirectories() error = %v", err)
	}

	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want browser-like agent", gotUA)
	}
}

// TestListDirectoriesServerError verifies non-200 listings surface an error
func TestListDirectoriesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.ListDirectories(context.Background()); err == nil {
		t.Fatal("ListDirectories() expected error for 500 listing, got nil")
	}
}

// TestFetchChanges verifies content retrieval for an existing changes file
func TestFetchChanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v6.10/CHANGES" {
			w.Write([]byte("wifi: mt7921 fix\nusb: quirk\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	content, ok, err := client.FetchChanges(context.Background(), "v6.10")
	if err != nil {
		t.Fatalf("FetchChanges() error = %v", err)
	}
	if !ok {
		t.Fatal("FetchChanges() ok = false, want true")
	}
	if !strings.Contains(content, "mt7921") {
		t.Errorf("content = %q, want fetched body", content)
	}
}

// TestFetchChangesNotFound verifies 404 is silent: no content, no error
func TestFetchChangesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	content, ok, err := client.FetchChanges(context.Background(), "v6.10")
	if err != nil {
		t.Fatalf("FetchChanges() error = %v, want nil for 404", err)
	}
	if ok {
		t.Error("FetchChanges() ok = true, want false for 404")
	}
	if content != "" {
		t.Errorf("content = %q, want empty for 404", content)
	}
}

// TestFetchChangesServerError verifies non-404 failures return an error
func TestFetchChangesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, _, err := client.FetchChanges(context.Background(), "v6.10"); err == nil {
		t.Fatal("FetchChanges() expected error for 503, got nil")
	}
}

// TestChangesURL verifies URL construction with and without trailing slash
func TestChangesURL(t *testing.T) {
	tests := []struct {
		baseURL string
		dir     string
		want    string
	}{
		{"https://example.org/mainline/", "v6.10", "https://example.org/mainline/v6.10/CHANGES"},
		{"https://example.org/mainline", "v6.2", "https://example.org/mainline/v6.2/CHANGES"},
	}

	for _, tt := range tests {
		client := NewClient(testConfig(tt.baseURL))
		if got := client.ChangesURL(tt.dir); got != tt.want {
			t.Errorf("ChangesURL(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}
