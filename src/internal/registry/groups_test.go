package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroups_Lookup(t *testing.T) {
	groups := Groups{
		{Name: "legacy", Projects: []string{}, Version: "14.21.3"},
		{Name: "draft", Projects: []string{}},
	}

	require.True(t, groups.Exists("legacy"))
	require.False(t, groups.Exists("missing"))

	version, err := groups.VersionOf("legacy")
	require.NoError(t, err)
	require.Equal(t, "14.21.3", version)

	_, err = groups.VersionOf("draft")
	require.EqualError(t, err, "The Node.js version for group 'draft' has not been set yet")

	_, err = groups.VersionOf("missing")
	require.True(t, IsGroupNotFound(err))
}

func TestGroupRegistry_AddProjectOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"my-group","version":"18.0.0"}]`), 0644))

	registry := NewGroupRegistry(path)

	groups, err := registry.Load()
	require.NoError(t, err)
	require.Equal(t, []string{}, groups[0].Projects, "missing projects field loads as empty list")

	require.NoError(t, registry.AddProject("my-group", "/work/api"))
	require.NoError(t, registry.AddProject("my-group", "/work/api"))
	require.NoError(t, registry.AddProject("my-group", "/work/web"))

	groups, err = registry.Load()
	require.NoError(t, err)
	group, ok := groups.FindByName("my-group")
	require.True(t, ok)
	require.Equal(t, []string{"/work/api", "/work/web"}, group.Projects)
	require.Equal(t, "18.0.0", group.Version)
}

func TestGroupRegistry_AddProjectKeepsOtherListsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.json")
	seed := `[{"name":"a","version":"18.0.0"},{"name":"b","version":"20.0.0","projects":[]}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	require.NoError(t, NewGroupRegistry(path).AddProject("b", "/p"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 2)
	require.JSONEq(t, `[]`, string(onDisk[0]["projects"]))
	require.JSONEq(t, `["/p"]`, string(onDisk[1]["projects"]))
}
