package npm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePackage(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644))
}

func TestBinNames(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"string bin", `{"name":"typescript-lite","bin":"./bin/tsc"}`, []string{"typescript-lite"}},
		{"scoped string bin", `{"name":"@vue/cli","bin":"bin/vue.js"}`, []string{"cli"}},
		{"map bin", `{"name":"typescript","bin":{"tsserver":"a","tsc":"b"}}`, []string{"tsc", "tsserver"}},
		{"no bin", `{"name":"lodash"}`, nil},
		{"null bin", `{"name":"lodash","bin":null}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePackage(t, dir, tt.content)

			pkg, err := FromDir(dir)
			require.NoError(t, err)
			require.Equal(t, tt.want, pkg.BinNames())
		})
	}
}

func TestFromPrefix(t *testing.T) {
	prefix := t.TempDir()
	writePackage(t, filepath.Join(prefix, "typescript"), `{"name":"typescript","bin":{"tsc":"x","tsserver":"y"}}`)
	writePackage(t, filepath.Join(prefix, "@scope", "tool"), `{"name":"@scope/tool","bin":{"scoped-tool":"x"}}`)
	writePackage(t, filepath.Join(prefix, "broken"), `{nope`)

	require.Equal(t, []string{"tsc", "tsserver"}, FromPrefix(prefix, "typescript").BinNames())
	require.Empty(t, FromPrefix(prefix, "missing").BinNames())
	require.Empty(t, FromPrefix(prefix, "broken").BinNames())

	names := BinNamesFromPrefix(prefix, []string{"typescript", "@scope/tool", "missing"})
	require.Equal(t, []string{"tsc", "tsserver", "scoped-tool"}, names)
}

func TestFromDir_Errors(t *testing.T) {
	_, err := FromDir(t.TempDir())
	require.Error(t, err)

	dir := t.TempDir()
	writePackage(t, dir, `{nope`)
	_, err = FromDir(dir)
	require.Error(t, err)
}

func TestFirstDir(t *testing.T) {
	dir := t.TempDir()

	got, err := firstDir([]byte("\n/does/not/exist\n  " + dir + "  \n"))
	require.NoError(t, err)
	require.Equal(t, dir, got)

	_, err = firstDir([]byte("/does/not/exist\n"))
	require.ErrorIs(t, err, ErrNoPrefix)
}
