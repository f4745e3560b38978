package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() Session {
	return Session{
		Token: "t1",
		User:  User{Name: "x", Email: "x@example.com"},
	}
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "session.json")
}

func TestSaveThenCurrent(t *testing.T) {
	fs := NewFileStore(storePath(t))

	require.NoError(t, fs.Save(testSession()))
	assert.Equal(t, testSession(), fs.Current())
}

func TestSurvivesRestart(t *testing.T) {
	path := storePath(t)

	fs := NewFileStore(path)
	require.NoError(t, fs.Save(testSession()))

	// A fresh store over the same file sees the saved session.
	again := NewFileStore(path)
	assert.Equal(t, testSession(), again.Current())
}

func TestClear(t *testing.T) {
	path := storePath(t)
	fs := NewFileStore(path)
	require.NoError(t, fs.Save(testSession()))

	require.NoError(t, fs.Clear())

	assert.Equal(t, Session{}, fs.Current())
	assert.False(t, fs.Current().Present())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClear_AbsentSessionSucceeds(t *testing.T) {
	fs := NewFileStore(storePath(t))
	require.NoError(t, fs.Clear())
	assert.Equal(t, Session{}, fs.Current())
}

func TestMissingFileIsAbsentSession(t *testing.T) {
	fs := NewFileStore(storePath(t))
	assert.False(t, fs.Current().Present())
}

func TestMalformedFileIsAbsentSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	fs := NewFileStore(path)
	assert.False(t, fs.Current().Present())

	// And the store still accepts a new session over the bad file.
	require.NoError(t, fs.Save(testSession()))
	assert.Equal(t, testSession(), fs.Current())
}

func TestTokenlessFileIsAbsentSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"name":"x"}}`), 0o600))

	fs := NewFileStore(path)
	assert.False(t, fs.Current().Present())
	assert.Empty(t, fs.Current().User.Name)
}

func TestSubscribe_NotifiedOnSaveAndClear(t *testing.T) {
	fs := NewFileStore(storePath(t))

	var seen []Session
	fs.Subscribe(func(s Session) { seen = append(seen, s) })

	require.NoError(t, fs.Save(testSession()))
	require.NoError(t, fs.Clear())

	require.Len(t, seen, 2)
	assert.Equal(t, testSession(), seen[0])
	assert.Equal(t, Session{}, seen[1])
}
