// Package download fetches Node.js distribution files and unpacks their archives
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// Client is the HTTP client used for every download
var Client = &http.Client{Timeout: 30 * time.Minute}

// File downloads url to destPath, drawing a progress bar when stderr is a terminal.
// A partial file is removed on failure.
func File(ctx context.Context, url, destPath string) error {
	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	resp, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	size := resp.ContentLength
	ui.Debug("Content-Length: %d bytes", size)

	var dst io.Writer = out
	if ui.IsTerminal() {
		dst = io.MultiWriter(out, newBar(size, "Downloading"))
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		ui.Debug("Download failed: %v", err)
		return fmt.Errorf("download interrupted: %w (URL: %s)", err, url)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return err
	}

	ui.Debug("Download complete: %s", destPath)
	return nil
}

// Bytes downloads a small document such as SHASUMS256.txt or index.json
func Bytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// HTTPError reports a non-200 response
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("download failed (HTTP %s): %s", e.Status, e.URL)
}

func get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	ui.Debug("Making HTTP GET request...")
	resp, err := Client.Do(req)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		return nil, fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}

	ui.Debug("HTTP response: %s", resp.Status)
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

func newBar(size int64, description string) *progressbar.ProgressBar {
	w := ui.Output()
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(w) }),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
