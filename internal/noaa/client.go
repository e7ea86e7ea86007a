// Package noaa fetches the ENLIL animation manifest and its frames from
// the NOAA Space Weather Prediction Center.
package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the SWPC products host.
const DefaultBaseURL = "https://services.swpc.noaa.gov"

// Entry is one record of the animation manifest. URL is a path relative
// to the products host, e.g. /images/animations/enlil/enlil_com_20230101.jpg.
type Entry struct {
	URL     string `json:"url"`
	TimeTag string `json:"time_tag,omitempty"`
}

// Client talks to the SWPC products API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient returns a Client for baseURL, falling back to DefaultBaseURL
// when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  "enlil/1.0",
	}
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.HTTPClient.Do(req)
}

// DownloadManifest fetches manifestURL into dest using a conditional GET.
// The previous ETag is kept in a <dest>.etag sidecar file; when the server
// answers 304 Not Modified the local copy is left alone and false is
// returned. True means a new manifest was written.
func (c *Client) DownloadManifest(ctx context.Context, manifestURL, dest string) (bool, error) {
	headers := map[string]string{}
	etagFile := dest + ".etag"
	if data, err := os.ReadFile(etagFile); err == nil {
		if etag := strings.TrimSpace(string(data)); etag != "" {
			headers["If-None-Match"] = etag
		}
	}

	resp, err := c.get(ctx, manifestURL, headers)
	if err != nil {
		return false, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return false, nil
	case http.StatusOK:
	default:
		return false, fmt.Errorf("failed to fetch manifest: unexpected status %s", resp.Status)
	}

	if _, err := writeFile(dest, resp.Body); err != nil {
		return false, fmt.Errorf("failed to save manifest: %w", err)
	}
	if etag := resp.Header.Get("ETag"); etag != "" {
		if err := os.WriteFile(etagFile, []byte(etag), 0o644); err != nil {
			slog.Warn("failed to save etag", "file", etagFile, "error", err)
		}
	}
	return true, nil
}

// LoadManifest parses a previously downloaded manifest file.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return entries, nil
}

// DownloadImage fetches one frame, addressed by its manifest path, into
// dest and returns the number of bytes written. Nothing is written unless
// the server answers 200.
func (c *Client) DownloadImage(ctx context.Context, urlPath, dest string) (int64, error) {
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}
	resp, err := c.get(ctx, c.BaseURL+urlPath, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", urlPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch %s: unexpected status %s", urlPath, resp.Status)
	}
	n, err := writeFile(dest, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to save %s: %w", dest, err)
	}
	return n, nil
}

// writeFile downloads r into dest through a temporary file, renaming it
// over dest only once the body arrived completely. A download that dies
// mid-body therefore never disturbs the previous dest or its ETag sidecar.
func writeFile(dest string, r io.Reader) (int64, error) {
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return n, nil
}
