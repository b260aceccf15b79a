package node

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nvmd/nvmd/src/internal/download"
	"github.com/ulikunitz/xz"
)

func TestArchiveName(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "node-v18.17.1-linux-x64.tar.xz", false},
		{"linux", "arm64", "node-v18.17.1-linux-arm64.tar.xz", false},
		{"linux", "arm", "node-v18.17.1-linux-armv7l.tar.xz", false},
		{"darwin", "arm64", "node-v18.17.1-darwin-arm64.tar.xz", false},
		{"windows", "amd64", "node-v18.17.1-win-x64.7z", false},
		{"windows", "386", "node-v18.17.1-win-x86.7z", false},
		{"plan9", "amd64", "", true},
		{"linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := ArchiveName("18.17.1", tt.goos, tt.goarch)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ArchiveName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ArchiveName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetcherURL(t *testing.T) {
	f := &Fetcher{Mirror: "https://npmmirror.com/mirrors/node/"}
	want := "https://npmmirror.com/mirrors/node/v18.17.1/SHASUMS256.txt"
	if got := f.URL("18.17.1", "SHASUMS256.txt"); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

const testVersion = "18.17.1"
const testArchive = "node-v18.17.1-linux-x64.tar.xz"

func buildArchive(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(xw)
	files := []struct {
		name string
		dir  bool
		body string
	}{
		{name: "node-v18.17.1-linux-x64/", dir: true},
		{name: "node-v18.17.1-linux-x64/bin/", dir: true},
		{name: "node-v18.17.1-linux-x64/bin/node", body: "#!/bin/sh\n"},
	}
	for _, f := range files {
		hdr := &tar.Header{Name: f.name, Mode: 0755, Typeflag: tar.TypeReg, Size: int64(len(f.body))}
		if f.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if !f.dir {
			if _, err := tw.Write([]byte(f.body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type mirror struct {
	archive   []byte
	checksum  string
	downloads atomic.Int32
	noArchive bool
}

func newMirror(t *testing.T, m *mirror) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v"+testVersion+"/"+testArchive, func(w http.ResponseWriter, r *http.Request) {
		if m.noArchive {
			http.NotFound(w, r)
			return
		}
		m.downloads.Add(1)
		_, _ = w.Write(m.archive)
	})
	mux.HandleFunc("/v"+testVersion+"/SHASUMS256.txt", func(w http.ResponseWriter, r *http.Request) {
		if m.checksum == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, "%s  %s\n", m.checksum, testArchive)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sha(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func newTestFetcher(t *testing.T, srv *httptest.Server) *Fetcher {
	t.Helper()
	return &Fetcher{
		Mirror:       srv.URL,
		Dir:          t.TempDir(),
		GOOS:         "linux",
		GOARCH:       "amd64",
		RetryTimeout: time.Second,
	}
}

func TestFetch(t *testing.T) {
	archive := buildArchive(t)
	m := &mirror{archive: archive, checksum: sha(archive)}
	f := newTestFetcher(t, newMirror(t, m))

	installDir, err := f.Fetch(t.Context(), testVersion)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if installDir != filepath.Join(f.Dir, testVersion) {
		t.Errorf("Fetch() = %q", installDir)
	}
	if _, err := os.Stat(executable(installDir, "linux")); err != nil {
		t.Errorf("node binary missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.Dir, testArchive)); err != nil {
		t.Errorf("archive should be kept for reuse: %v", err)
	}

	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != testVersion && e.Name() != testArchive {
			t.Errorf("leftover entry %q in versions directory", e.Name())
		}
	}
}

func TestFetch_ReusesCachedArchive(t *testing.T) {
	archive := buildArchive(t)
	m := &mirror{archive: archive, checksum: sha(archive)}
	f := newTestFetcher(t, newMirror(t, m))

	if _, err := f.Fetch(t.Context(), testVersion); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}
	if err := os.RemoveAll(filepath.Join(f.Dir, testVersion)); err != nil {
		t.Fatal(err)
	}

	m.noArchive = true
	if _, err := f.Fetch(t.Context(), testVersion); err != nil {
		t.Fatalf("second Fetch() error: %v", err)
	}
	if got := m.downloads.Load(); got != 1 {
		t.Errorf("archive downloaded %d times, want 1", got)
	}
}

func TestFetch_ReplacesCorruptCache(t *testing.T) {
	archive := buildArchive(t)
	m := &mirror{archive: archive, checksum: sha(archive)}
	f := newTestFetcher(t, newMirror(t, m))

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(f.Dir, testArchive), []byte("truncated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Fetch(t.Context(), testVersion); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got := m.downloads.Load(); got != 1 {
		t.Errorf("archive downloaded %d times, want 1", got)
	}
}

func TestFetch_ChecksumMismatch(t *testing.T) {
	m := &mirror{archive: buildArchive(t), checksum: sha([]byte("something else"))}
	f := newTestFetcher(t, newMirror(t, m))

	_, err := f.Fetch(t.Context(), testVersion)

	var mismatch *download.ErrChecksumMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Fetch() error = %v, want ErrChecksumMismatch", err)
	}
	if _, err := os.Stat(filepath.Join(f.Dir, testVersion)); !os.IsNotExist(err) {
		t.Error("version directory should not exist after a failed fetch")
	}
	if _, err := os.Stat(filepath.Join(f.Dir, testArchive)); !os.IsNotExist(err) {
		t.Error("a mismatching archive must not be cached")
	}
}

func TestFetch_WithoutChecksums(t *testing.T) {
	m := &mirror{archive: buildArchive(t)}
	f := newTestFetcher(t, newMirror(t, m))

	if _, err := f.Fetch(t.Context(), testVersion); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
}

func TestFetch_NotPublished(t *testing.T) {
	m := &mirror{noArchive: true}
	f := newTestFetcher(t, newMirror(t, m))

	_, err := f.Fetch(t.Context(), testVersion)

	var httpErr *download.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("Fetch() error = %v, want 404 HTTPError", err)
	}
}

func TestMoveIntoPlace(t *testing.T) {
	dir := t.TempDir()
	f := &Fetcher{RetryTimeout: time.Second}

	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "18.17.1")
	if err := os.MkdirAll(filepath.Join(dst, "stale"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := f.moveIntoPlace(t.Context(), src, dst); err != nil {
		t.Fatalf("moveIntoPlace() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "bin")); err != nil {
		t.Error("moved tree missing")
	}
	if _, err := os.Stat(filepath.Join(dst, "stale")); !os.IsNotExist(err) {
		t.Error("stale content should be replaced")
	}

	start := time.Now()
	err := f.moveIntoPlace(t.Context(), filepath.Join(dir, "missing"), filepath.Join(dir, "other"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("moveIntoPlace() error = %v, want not-exist", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("a missing source must not be retried")
	}
}
