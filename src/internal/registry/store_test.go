package registry

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore[Packages](filepath.Join(t.TempDir(), "packages.json"))

	data, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewStore[Packages](path).Load()
	require.Error(t, err)
	require.True(t, IsReadError(err), "want ReadError, got %T", err)
	require.Contains(t, err.Error(), path)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "groups.json")
	store := NewStore[Groups](path)

	groups := Groups{{Name: "web", Projects: []string{"/a"}, Version: "18.0.0"}}
	require.NoError(t, store.Save(groups))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, groups, loaded)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestStore_UpdateErrorDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.json")
	registry := NewGroupRegistry(path)

	err := registry.AddProject("missing", "/proj")
	require.True(t, IsGroupNotFound(err))

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "failed update must not create the file")
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.json")

	const workers = 20
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Each worker opens its own registry, like separate nvmd processes
			registry := NewPackageRegistry(path)
			name := []string{"tsc", "eslint"}[i%2]
			version := []string{"16.0.0", "18.0.0", "20.0.0", "22.0.0"}[i%4]
			errs <- registry.RecordInstalled([]string{name}, version)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	data, err := NewPackageRegistry(path).Load()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"16.0.0", "20.0.0"}, data["tsc"])
	require.ElementsMatch(t, []string{"18.0.0", "22.0.0"}, data["eslint"])
}
