// Package notice tells the companion desktop application that nvmd changed
// the active or installed versions, so it can refresh its view.
package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nvmd/nvmd/src/internal/ui"
)

// DefaultURL is the endpoint the desktop application listens on
const DefaultURL = "http://127.0.0.1:53333/notice"

// Source names what changed
type Source string

const (
	SourceCurrent Source = "current" // The global default version
	SourceVersion Source = "version" // The set of installed versions
	SourceProject Source = "project" // A project's version
)

// Notice is the JSON body posted to the application.
// Absent fields are sent as null.
type Notice struct {
	Source  Source  `json:"source"`
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

// Current reports a new global default version
func Current(version string) Notice {
	return Notice{Source: SourceCurrent, Version: &version}
}

// Versions reports that versions were installed or removed
func Versions() Notice {
	return Notice{Source: SourceVersion}
}

// Project reports a new version for the project called name
func Project(name, version string) Notice {
	return Notice{Source: SourceProject, Name: &name, Version: &version}
}

// Client posts notices
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient returns a client for the default endpoint
func NewClient() *Client {
	return &Client{
		URL:  DefaultURL,
		HTTP: &http.Client{Timeout: 2 * time.Second},
	}
}

// Send posts n and reports any failure
func (c *Client) Send(ctx context.Context, n Notice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notice rejected: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Notify sends n and ignores failures; the application is usually not running
func (c *Client) Notify(ctx context.Context, n Notice) {
	if err := c.Send(ctx, n); err != nil {
		ui.Debug("Notice not delivered: %v", err)
	}
}
