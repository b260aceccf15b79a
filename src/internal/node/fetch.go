package node

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/download"
	"github.com/nvmd/nvmd/src/internal/ui"
	"golang.org/x/sync/errgroup"
)

const checksumFile = "SHASUMS256.txt"

// UnsupportedPlatformError is returned when no Node.js build exists for the host
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s/%s", e.OS, e.Arch)
}

var osNames = map[string]string{
	constants.OSDarwin:  "darwin",
	constants.OSLinux:   "linux",
	constants.OSWindows: "win",
}

var archNames = map[string]string{
	constants.ArchAMD64: "x64",
	constants.ArchARM64: "arm64",
	constants.Arch386:   "x86",
	constants.ArchARM:   "armv7l",
}

// ArchiveName returns the distribution file name for version on goos/goarch,
// e.g. node-v18.17.1-linux-x64.tar.xz or node-v18.17.1-win-x64.7z
func ArchiveName(version, goos, goarch string) (string, error) {
	osName, ok := osNames[goos]
	if !ok {
		return "", &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}
	arch, ok := archNames[goarch]
	if !ok {
		return "", &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	ext := ".tar.xz"
	if goos == constants.OSWindows {
		ext = ".7z"
	}

	return fmt.Sprintf("node-v%s-%s-%s%s", version, osName, arch, ext), nil
}

// Fetcher downloads and unpacks Node.js distributions into the versions directory
type Fetcher struct {
	Mirror string // Base URL, e.g. https://nodejs.org/dist
	Dir    string // Versions directory
	GOOS   string
	GOARCH string

	// RetryTimeout bounds how long moving the unpacked tree into place is
	// retried while the target is locked by another process.
	RetryTimeout time.Duration
}

// NewFetcher creates a fetcher for the host platform using the configured mirror and directory
func NewFetcher(cfg *config.Context) *Fetcher {
	return &Fetcher{
		Mirror:       cfg.Setting.Mirror,
		Dir:          cfg.VersionsDir(),
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
		RetryTimeout: 30 * time.Second,
	}
}

// URL returns the mirror URL of a file published for version
func (f *Fetcher) URL(version, file string) string {
	return fmt.Sprintf("%s/v%s/%s", strings.TrimRight(f.Mirror, "/"), version, file)
}

// Fetch installs version into {Dir}/{version} and returns that directory.
// A verified archive already present in Dir is reused instead of downloading.
func (f *Fetcher) Fetch(ctx context.Context, version string) (string, error) {
	name, err := ArchiveName(version, f.GOOS, f.GOARCH)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create versions directory: %w", err)
	}

	archivePath := filepath.Join(f.Dir, name)
	if err := f.obtain(ctx, version, name, archivePath); err != nil {
		return "", err
	}

	stagingDir, err := os.MkdirTemp(f.Dir, ".staging-"+version+"-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stagingDir) }()

	ui.Progress("Unpacking node into '%s'", stagingDir)
	err = ui.WithSpinner("Extracting archive", func() error {
		return download.Extract(archivePath, stagingDir)
	})
	if err != nil {
		_ = os.Remove(archivePath)
		return "", fmt.Errorf("failed to extract %s: %w", name, err)
	}

	top, err := download.TopLevelDir(stagingDir)
	if err != nil {
		return "", err
	}

	installDir := filepath.Join(f.Dir, version)
	ui.Progress("Installing node in '%s'", installDir)
	if err := f.moveIntoPlace(ctx, top, installDir); err != nil {
		return "", fmt.Errorf("failed to install node@v%s: %w", version, err)
	}

	return installDir, nil
}

// obtain leaves a verified archive at archivePath
func (f *Fetcher) obtain(ctx context.Context, version, name, archivePath string) error {
	sumsURL := f.URL(version, checksumFile)

	if info, err := os.Stat(archivePath); err == nil && info.Mode().IsRegular() {
		if err := verify(f.checksums(ctx, sumsURL), name, archivePath); err == nil {
			ui.Progress("Loading %s from cached archive", name)
			return nil
		}
		ui.Debug("Cached archive %s failed verification, downloading again", archivePath)
		_ = os.Remove(archivePath)
	}

	url := f.URL(version, name)
	partial := archivePath + ".partial"
	ui.Progress("Downloading node@v%s from %s", version, url)

	var sums download.Checksums
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sums = f.checksums(gctx, sumsURL)
		return nil
	})
	g.Go(func() error {
		return download.File(gctx, url, partial)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to download node@v%s: %w", version, err)
	}

	if err := verify(sums, name, partial); err != nil {
		_ = os.Remove(partial)
		return err
	}

	return os.Rename(partial, archivePath)
}

// checksums fetches the checksum list; an unavailable list yields nil
func (f *Fetcher) checksums(ctx context.Context, url string) download.Checksums {
	data, err := download.Bytes(ctx, url)
	if err != nil {
		ui.Debug("Checksums unavailable: %v", err)
		return nil
	}
	return download.ParseChecksums(data)
}

func verify(sums download.Checksums, name, path string) error {
	expected, ok := sums[name]
	if !ok {
		ui.Debug("No checksum listed for %s, skipping verification", name)
		return nil
	}
	return download.VerifyFile(path, expected)
}

// moveIntoPlace renames src to dst, retrying with exponential backoff while
// the rename is denied. Other errors fail immediately.
func (f *Fetcher) moveIntoPlace(ctx context.Context, src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = f.RetryTimeout

	return backoff.Retry(func() error {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		if errors.Is(err, fs.ErrPermission) {
			ui.Debug("Rename denied, retrying: %v", err)
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
}
