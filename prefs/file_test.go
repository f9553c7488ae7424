package prefs

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yml")

	f, err := Open(path, nil)
	require.NoError(t, err)
	assert.Empty(t, f.Keys())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Open must not create the file")
}

func TestFilePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yml")

	f, err := Open(path, nil)
	require.NoError(t, err)
	f.SetString("rpcsx_channel", "RPCSX/rpcsx-build")
	f.SetStringList("rpcsx_channel_list", []string{"RPCSX/rpcsx-build", "me/fork"})
	require.NoError(t, f.Flush())

	reopened, err := Open(path, nil)
	require.NoError(t, err)

	sel, ok := reopened.GetString("rpcsx_channel")
	assert.True(t, ok)
	assert.Equal(t, "RPCSX/rpcsx-build", sel)

	list, ok := reopened.GetStringList("rpcsx_channel_list")
	assert.True(t, ok)
	assert.Equal(t, []string{"RPCSX/rpcsx-build", "me/fork"}, list, "list order must survive a round trip")
}

func TestFileReadYourWrites(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "prefs.yml"), nil)
	require.NoError(t, err)

	f.SetString("ui_channel", "one")
	got, _ := f.GetString("ui_channel")
	assert.Equal(t, "one", got)

	f.SetString("ui_channel", "two")
	got, _ = f.GetString("ui_channel")
	assert.Equal(t, "two", got)

	f.Delete("ui_channel")
	_, ok := f.GetString("ui_channel")
	assert.False(t, ok)
}

func TestFileMalformedDocumentIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	require.NoError(t, os.WriteFile(path, []byte("ui_channel: [unterminated\n"), 0644))

	f, err := Open(path, nil)
	require.NoError(t, err)
	assert.Empty(t, f.Keys())

	f.SetString("ui_channel", "fixed")
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	got, _ := reopened.GetString("ui_channel")
	assert.Equal(t, "fixed", got)
}

func TestFileWrongTypedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	content := "gpu_driver_channel_list: 7\ngpu_driver_channel:\n  - nested\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	f, err := Open(path, nil)
	require.NoError(t, err)

	_, ok := f.GetStringList("gpu_driver_channel_list")
	assert.False(t, ok)
	_, ok = f.GetString("gpu_driver_channel")
	assert.False(t, ok)
}

func TestWatchReloadsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	f, err := Open(path, nil)
	require.NoError(t, err)
	f.SetString("ui_channel", "before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	require.NoError(t, Watch(ctx, f, func() { changes.Add(1) }))

	require.NoError(t, os.WriteFile(path, []byte("ui_channel: after\n"), 0644))

	require.Eventually(t, func() bool {
		got, _ := f.GetString("ui_channel")
		return got == "after" && changes.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
}
