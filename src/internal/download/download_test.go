package download

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v18.17.1/SHASUMS256.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("abc  node-v18.17.1-linux-x64.tar.xz\n"))
	})
	mux.HandleFunc("/v18.17.1/node-v18.17.1-linux-x64.tar.xz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("archive bytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFile(t *testing.T) {
	srv := newServer(t)
	dest := filepath.Join(t.TempDir(), "nested", "node.tar.xz")

	if err := File(t.Context(), srv.URL+"/v18.17.1/node-v18.17.1-linux-x64.tar.xz", dest); err != nil {
		t.Fatalf("File() error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "archive bytes" {
		t.Errorf("downloaded %q", data)
	}
}

func TestFile_NotFound(t *testing.T) {
	srv := newServer(t)
	dest := filepath.Join(t.TempDir(), "node.tar.xz")

	err := File(t.Context(), srv.URL+"/v99.0.0/missing.tar.xz", dest)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("File() error = %v, want HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no file should be created for a failed request")
	}
}

func TestBytes(t *testing.T) {
	srv := newServer(t)

	data, err := Bytes(t.Context(), srv.URL+"/v18.17.1/SHASUMS256.txt")
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if got := ParseChecksums(data)["node-v18.17.1-linux-x64.tar.xz"]; got != "abc" {
		t.Errorf("checksum = %q, want %q", got, "abc")
	}
}

func TestFile_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := File(t.Context(), url+"/x", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("File() should fail when the server is gone")
	}
}
