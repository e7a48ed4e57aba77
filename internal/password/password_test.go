package password

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	creds := []Credential{{Username: "root", Password: "hunter2"}, {Username: "svc", Password: "p@ss1"}}

	require.NoError(t, store.Write("alpha", "ssh", creds))
	got, err := store.Read("alpha", "ssh")
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

func TestParseCredentialsSkipsDisallowedCharacters(t *testing.T) {
	creds := parseCredentials("root:goodpass\nbad user:pass\nalice:bad pass\nbob:ok1")
	var users []string
	for _, c := range creds {
		users = append(users, c.Username)
	}
	assert.Equal(t, []string{"root", "bob"}, users)
}

func TestOverwriteMergesByUsername(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("alpha", "ssh", []Credential{
		{Username: "root", Password: "old"},
		{Username: "svc", Password: "keep"},
	}))

	require.NoError(t, store.Overwrite("alpha", "ssh", []Credential{
		{Username: "root", Password: "new"},
	}))

	got, err := store.Read("alpha", "ssh")
	require.NoError(t, err)
	byUser := map[string]string{}
	for _, c := range got {
		byUser[c.Username] = c.Password
	}
	assert.Equal(t, "new", byUser["root"])
	assert.Equal(t, "keep", byUser["svc"])
}

func TestValidateFilesystemCreatesAndPrunesTeamDirs(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.ValidateFilesystem([]string{"alpha", "beta"}))
	require.NoError(t, store.Write("beta", "ssh", []Credential{{Username: "a", Password: "b"}}))

	require.NoError(t, store.ValidateFilesystem([]string{"alpha"}))

	_, err := os.Stat(filepath.Join(dir, "PW", "alpha"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "PW", "beta"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("alpha", "ssh", []Credential{{Username: "root", Password: "hunter2"}}))
	require.NoError(t, store.Write("alpha", "db", []Credential{{Username: "dba", Password: "xyz123"}}))

	payload, err := store.ExportTeam("alpha")
	require.NoError(t, err)
	require.Len(t, payload, 2)

	restored := NewStore(t.TempDir())
	require.NoError(t, restored.ImportAll(map[string][]GroupPayload{"alpha": payload}))

	got, err := restored.Read("alpha", "ssh")
	require.NoError(t, err)
	assert.Equal(t, []Credential{{Username: "root", Password: "hunter2"}}, got)
}

func TestGroupsListsSortedGroupNames(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("alpha", "zeta", nil))
	require.NoError(t, store.Write("alpha", "alpha-group", nil))

	groups, err := store.Groups("alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha-group", "zeta"}, groups)
}

func TestRemoveGroup(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("alpha", "ssh", nil))
	require.NoError(t, store.RemoveGroup("alpha", "ssh"))

	_, err := store.Read("alpha", "ssh")
	assert.True(t, os.IsNotExist(err))
}
