package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/migration"
	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/registry"
	"github.com/nvmd/nvmd/src/internal/remote"
	"github.com/nvmd/nvmd/src/internal/shim"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	notices []notice.Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n notice.Notice) {
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) sources() []notice.Source {
	out := make([]notice.Source, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Source)
	}
	return out
}

// fakeFetcher installs an empty node binary instead of downloading
type fakeFetcher struct {
	dir     string
	fetched []string
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, version string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.fetched = append(f.fetched, version)
	return installFake(f.dir, version)
}

type staticSource struct {
	index remote.Index
	err   error
}

func (s staticSource) Index(context.Context) (remote.Index, error) {
	return s.index, s.err
}

func (s staticSource) URL() string {
	return "https://mirror.test/dist"
}

type testEnv struct {
	app      *App
	home     config.Home
	project  string
	out      *bytes.Buffer
	fetcher  *fakeFetcher
	notifier *recordingNotifier
}

// newTestEnv builds an App rooted in temp directories. Versions are resolved
// from the project directory when the env is created, so install versions
// and write markers before calling it when a test needs an active version.
func newTestEnv(t *testing.T, setup func(home config.Home, project string)) *testEnv {
	t.Helper()

	home := config.NewHome(t.TempDir())
	project := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(project, 0755))
	require.NoError(t, home.EnsureDirectories())

	if setup != nil {
		setup(home, project)
	}

	setting := config.Setting{Directory: home.VersionsDir(), Mirror: "https://mirror.test/dist"}
	cfg, err := config.NewContext(home, setting, project)
	require.NoError(t, err)

	var out bytes.Buffer
	ui.SetOutput(&out)
	t.Cleanup(func() { ui.SetOutput(nil) })

	fetcher := &fakeFetcher{dir: home.VersionsDir()}
	notifier := &recordingNotifier{}

	app := &App{
		Config:   cfg,
		Packages: registry.NewPackageRegistry(home.PackagesPath()),
		Projects: registry.NewProjectRegistry(home.ProjectsPath()),
		Groups:   registry.NewGroupRegistry(home.GroupsPath()),
		Linker:   shim.New(home.BinDir()),
		Fetcher:  fetcher,
		Remote:   staticSource{index: sampleIndex()},
		Notifier: notifier,
		Detect: func() ([]migration.DetectedVersion, []error) {
			return nil, nil
		},
		Executable: os.Executable,
		Stdin:      strings.NewReader(""),
	}

	return &testEnv{
		app:      app,
		home:     home,
		project:  project,
		out:      &out,
		fetcher:  fetcher,
		notifier: notifier,
	}
}

func (e *testEnv) run(args ...string) error {
	return Execute(context.Background(), e.app, args)
}

func sampleIndex() remote.Index {
	return remote.Index{
		{Version: "21.0.0-rc.1", Date: "2023-10-10"},
		{Version: "20.8.0", Date: "2023-09-28", NPM: "10.1.0"},
		{Version: "18.18.0", Date: "2023-09-18", LTS: "Hydrogen", NPM: "9.8.1"},
		{Version: "18.17.1", Date: "2023-08-08", LTS: "Hydrogen", NPM: "9.6.7"},
		{Version: "16.20.2", Date: "2023-08-08", LTS: "Gallium", NPM: "8.19.4"},
	}
}

// installFake creates a version directory holding an empty node executable
func installFake(versionsDir, version string) (string, error) {
	dir := filepath.Join(versionsDir, version)
	exe := node.Executable(dir)
	if err := os.MkdirAll(filepath.Dir(exe), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func mustInstall(t *testing.T, home config.Home, versions ...string) {
	t.Helper()
	for _, v := range versions {
		_, err := installFake(home.VersionsDir(), v)
		require.NoError(t, err)
	}
}

func writeGroups(t *testing.T, home config.Home, groups registry.Groups) {
	t.Helper()
	require.NoError(t, registry.NewStore[registry.Groups](home.GroupsPath()).Save(groups))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
