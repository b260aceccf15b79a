package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProjects_Patch(t *testing.T) {
	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	later := first.Add(time.Hour)

	var projects Projects
	projects.Patch("/work/api", "api", "18.0.0", first)
	projects.Patch("/work/web", "web", "20.0.0", first)

	require.Len(t, projects, 2)
	require.Equal(t, "/work/web", projects[0].Path, "new projects go to the front")
	require.True(t, projects[0].Active)
	require.Equal(t, first.Format(time.RFC3339), projects[0].CreateAt)

	projects.Patch("/work/api", "api", "my-group", later)

	require.Len(t, projects, 2, "an existing path is updated in place")
	api, ok := projects.Find("/work/api")
	require.True(t, ok)
	require.Equal(t, "my-group", api.Version)
	require.Equal(t, first.Format(time.RFC3339), api.CreateAt)
	require.Equal(t, later.Format(time.RFC3339), api.UpdateAt)
	require.Equal(t, "/work/web", projects[0].Path)
}

func TestProjectRegistry_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	registry := NewProjectRegistry(path)
	registry.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	require.NoError(t, registry.Patch("/work/api", "api", "18.0.0"))
	require.NoError(t, registry.Patch("/work/api", "api", "20.0.0"))

	projects, err := NewProjectRegistry(path).Load()
	require.NoError(t, err)
	require.Equal(t, Projects{{
		Active:   true,
		Name:     "api",
		Path:     "/work/api",
		Version:  "20.0.0",
		CreateAt: "2024-05-06T07:08:09Z",
		UpdateAt: "2024-05-06T07:08:09Z",
	}}, projects)
}
