package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavcoreHomeOverridesXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NAVCORE_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "/ignored")

	assert.Equal(t, filepath.Join(home, "config"), ConfigDir())
	assert.Equal(t, filepath.Join(home, "state"), StateDir())
	assert.Equal(t, filepath.Join(home, "state", "prefs.yml"), PrefsFile())
	assert.Equal(t, filepath.Join(home, "state", "logs"), LogDir())
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("NAVCORE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, filepath.Join("/xdg/config", "navcore"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/state", "navcore"), StateDir())
}

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NAVCORE_HOME", home)

	require.NoError(t, EnsureDirs())
	assert.DirExists(t, ConfigDir())
	assert.DirExists(t, LogDir())
}
