// Package mainline provides an HTTP client for the Ubuntu mainline kernel
// archive: the version directory listing and the per-version CHANGES files.
package mainline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/harrison/kernelgrep/internal/config"
	"github.com/harrison/kernelgrep/internal/version"
)

// userAgent mirrors a desktop browser; the archive serves plain Apache
// listings either way but some mirrors reject empty agents.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// dirPattern extracts version directory hrefs from the listing page,
// e.g. href="v6.10/" or href="v6.1.1-rc2/".
var dirPattern = regexp.MustCompile(`href="(v[\d.]+-?(?:rc\d+)?/)"`)

// Client fetches listing and CHANGES content from a mainline kernel archive.
type Client struct {
	baseURL     string
	changesFile string
	httpClient  *http.Client
}

// NewClient creates a new archive client with the given configuration.
// The HTTP client timeout is set from the config.
func NewClient(cfg *config.Config) *Client {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL:     base,
		changesFile: cfg.ChangesFile,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// BaseURL returns the normalized listing URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChangesURL returns the URL of the changes file for a version directory.
func (c *Client) ChangesURL(dir string) string {
	return c.baseURL + dir + "/" + c.changesFile
}

// ListDirectories fetches the listing page and returns the kernel version
// directory labels found in it, deduplicated and sorted newest first.
// Labels keep the leading "v" and have the trailing slash stripped.
func (c *Client) ListDirectories(ctx context.Context) ([]string, error) {
	body, _, err := c.get(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetching directory listing: %w", err)
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, m := range dirPattern.FindAllStringSubmatch(body, -1) {
		label := strings.TrimSuffix(m[1], "/")
		if !seen[label] {
			seen[label] = true
			dirs = append(dirs, label)
		}
	}

	version.SortDescending(dirs)
	return dirs, nil
}

// FetchChanges downloads the changes file for one version directory.
// A 404 is the expected case for directories without a changes file and is
// reported as ok=false with no error. Any other failure is returned as an
// error for the caller to log.
func (c *Client) FetchChanges(ctx context.Context, dir string) (content string, ok bool, err error) {
	body, status, err := c.get(ctx, c.ChangesURL(dir))
	if err != nil {
		if status == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("fetching %s: %w", c.ChangesURL(dir), err)
	}
	return body, true, nil
}

// get performs a GET with the browser User-Agent and returns the body for
// 200 responses. The status code is returned alongside any error so callers
// can special-case 404.
func (c *Client) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}
