package nav

import (
	"context"
	"fmt"
	"testing"

	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/prefs"
	"github.com/grovetools/navcore/settings"
	"github.com/grovetools/navcore/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoTree = `{
  "Video": {
    "Vulkan": {"Device": {"type": "string", "value": "Adreno"}},
    "Renderer": {"type": "enum", "value": "Vulkan"}
  },
  "Core": {"PPU Decoder": {"type": "enum", "value": "LLVM"}}
}`

type swapSource struct {
	root *settings.Group
	err  error
}

func (s *swapSource) Load(context.Context) (*settings.Group, error) {
	return s.root, s.err
}

type fakeInstaller struct {
	packages, folders int
	err               error
}

func (f *fakeInstaller) InstallPackage(context.Context) error {
	f.packages++
	return f.err
}

func (f *fakeInstaller) InstallFolder(context.Context) error {
	f.folders++
	return f.err
}

func mustTree(t *testing.T, doc string) *settings.Group {
	t.Helper()
	root, err := settings.DecodeJSON([]byte(doc))
	require.NoError(t, err)
	return root
}

func newHost(t *testing.T, src settings.Source, inst Installer) (*Host, *prefs.Memory) {
	t.Helper()
	kv := prefs.NewMemory()
	h := New(Options{
		Registry:  channels.NewRegistry(kv, channels.DefaultSpecs(), testutil.QuietLogger()),
		Settings:  src,
		Installer: inst,
		Logger:    testutil.QuietLogger(),
	})
	require.NoError(t, h.Start(context.Background()))
	return h, kv
}

func TestStartRegistersDestinations(t *testing.T) {
	h, kv := newHost(t, &swapSource{root: mustTree(t, videoTree)}, nil)

	assert.False(t, h.GamesOnly())
	assert.Equal(t, []string{
		"games", "users", "settings", "controls", "drivers", "update_channels",
		"gpu_driver_channels", "ui_channels", "rpcsx_channels",
		"settings@@Video", "settings@@Video@@Vulkan", "settings@@Core",
	}, h.Routes())

	d, ok := h.Destination("settings@@Video@@Vulkan")
	require.True(t, ok)
	assert.Equal(t, KindAdvancedSettings, d.Kind)
	assert.Equal(t, settings.Path{"Video", "Vulkan"}, d.Path)
	assert.Equal(t, "Vulkan", d.Title)

	d, ok = h.Destination("ui_channels")
	require.True(t, ok)
	assert.Equal(t, KindChannelList, d.Kind)
	assert.Equal(t, channels.UIPackage, d.Category)

	// Start loads every store, which writes back the release selections.
	sel, ok := kv.GetString(channels.EmulatorCore.SelectionKey())
	assert.True(t, ok)
	assert.Equal(t, channels.ReleaseRPCSXChannel, sel)

	assert.Equal(t, RouteGames, h.Current().Route)
	assert.Equal(t, KindGames, h.Current().Kind)
}

func TestStartGamesOnly(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		h, _ := newHost(t, nil, nil)
		assert.True(t, h.GamesOnly())
		assert.Equal(t, []string{"games"}, h.Routes())
		assert.Empty(t, h.DrawerLinks())
	})

	t.Run("library unavailable", func(t *testing.T) {
		h, _ := newHost(t, settings.FileSource{}, nil)
		assert.True(t, h.GamesOnly())

		err := h.Navigate(RouteSettings)
		assert.True(t, errors.Is(err, errors.ErrCodeRouteNotFound))
	})

	t.Run("other errors propagate", func(t *testing.T) {
		kv := prefs.NewMemory()
		h := New(Options{
			Registry: channels.NewRegistry(kv, channels.DefaultSpecs(), testutil.QuietLogger()),
			Settings: &swapSource{err: errors.SettingsDecode("json", fmt.Errorf("boom"))},
			Logger:   testutil.QuietLogger(),
		})
		err := h.Start(context.Background())
		assert.True(t, errors.Is(err, errors.ErrCodeSettingsDecode))
	})
}

func TestNavigateAndBack(t *testing.T) {
	h, _ := newHost(t, &swapSource{root: mustTree(t, videoTree)}, nil)

	assert.False(t, h.NavigateUp(), "start destination cannot be popped")

	require.NoError(t, h.Navigate(RouteSettings))
	require.NoError(t, h.Navigate("settings@@Video"))
	assert.Equal(t, []string{"games", "settings", "settings@@Video"}, h.Stack())

	err := h.Navigate("settings@@Audio")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRouteNotFound))
	assert.Equal(t, "settings@@Video", h.Current().Route)

	assert.True(t, h.Back())
	assert.Equal(t, RouteSettings, h.Current().Route)
	assert.True(t, h.NavigateUp())
	assert.False(t, h.Back())
	assert.Equal(t, RouteGames, h.Current().Route)
}

func TestBackClosesDrawerFirst(t *testing.T) {
	h, _ := newHost(t, &swapSource{root: mustTree(t, videoTree)}, nil)
	require.NoError(t, h.Navigate(RouteSettings))

	h.OpenDrawer()
	assert.True(t, h.Back())
	assert.False(t, h.DrawerOpen())
	assert.Equal(t, RouteSettings, h.Current().Route, "closing the drawer consumes the back event")

	assert.True(t, h.Back())
	assert.Equal(t, RouteGames, h.Current().Route)
}

func TestNavigateClosesTransientState(t *testing.T) {
	h, _ := newHost(t, &swapSource{root: mustTree(t, videoTree)}, nil)
	assert.False(t, h.DrawerOpen())
	assert.False(t, h.FabExpanded())

	h.ToggleDrawer()
	h.ToggleFab()
	assert.True(t, h.DrawerOpen())
	assert.True(t, h.FabExpanded())

	require.NoError(t, h.Navigate(RouteSettings))
	assert.False(t, h.DrawerOpen())
	assert.False(t, h.FabExpanded())
}

func TestInstallActions(t *testing.T) {
	inst := &fakeInstaller{}
	h, _ := newHost(t, nil, inst)
	ctx := context.Background()

	h.ToggleFab()
	require.NoError(t, h.InstallPackage(ctx))
	assert.False(t, h.FabExpanded())
	h.ToggleFab()
	require.NoError(t, h.InstallFolder(ctx))
	assert.False(t, h.FabExpanded())
	assert.Equal(t, 1, inst.packages)
	assert.Equal(t, 1, inst.folders)

	inst.err = fmt.Errorf("disk full")
	assert.EqualError(t, h.InstallPackage(ctx), "disk full")

	bare, _ := newHost(t, nil, nil)
	assert.False(t, bare.HasInstaller())
	err := bare.InstallFolder(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeInstallerUnavailable))
}

func TestInstallActionCollapsesFabBeforeRunning(t *testing.T) {
	inst := &fakeInstaller{}
	h, _ := newHost(t, nil, inst)
	require.True(t, h.HasInstaller())

	h.ToggleFab()
	run := h.PackageInstall()
	assert.False(t, h.FabExpanded())
	assert.Equal(t, 0, inst.packages)

	h.ToggleFab()
	require.NoError(t, run(context.Background()))
	assert.True(t, h.FabExpanded(), "running the returned call leaves host state alone")
	assert.Equal(t, 1, inst.packages)

	require.NoError(t, h.FolderInstall()(context.Background()))
	assert.False(t, h.FabExpanded())
	assert.Equal(t, 1, inst.folders)
}

func TestRefreshSettingsTrimsStack(t *testing.T) {
	src := &swapSource{root: mustTree(t, videoTree)}
	h, _ := newHost(t, src, nil)

	require.NoError(t, h.Navigate(RouteSettings))
	require.NoError(t, h.Navigate("settings@@Video"))
	require.NoError(t, h.Navigate("settings@@Video@@Vulkan"))

	src.root = mustTree(t, `{"Core": {"PPU Decoder": {"type": "enum"}}, "Audio": {}}`)
	require.NoError(t, h.RefreshSettings(context.Background()))

	assert.Equal(t, []string{"games", "settings"}, h.Stack())
	_, ok := h.Destination("settings@@Audio")
	assert.True(t, ok)
	_, ok = h.Destination("settings@@Video")
	assert.False(t, ok)

	src.err = errors.SettingsDecode("json", fmt.Errorf("bad"))
	assert.Error(t, h.RefreshSettings(context.Background()))
	_, ok = h.Destination("settings@@Audio")
	assert.True(t, ok, "failed refresh keeps the previous table")
}

func TestRefreshSettingsLeavesGamesOnly(t *testing.T) {
	src := &swapSource{err: errors.New(errors.ErrCodeLibraryUnavailable, "not loaded")}
	h, _ := newHost(t, src, nil)
	require.True(t, h.GamesOnly())

	src.err = nil
	src.root = mustTree(t, videoTree)
	require.NoError(t, h.RefreshSettings(context.Background()))
	assert.False(t, h.GamesOnly())
	assert.NoError(t, h.Navigate("settings@@Core"))
}
