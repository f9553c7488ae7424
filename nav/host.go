package nav

import (
	"context"
	"strings"

	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/prefs"
	"github.com/grovetools/navcore/settings"
	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options configures a Host.
type Options struct {
	// Registry defaults to the built-in categories over an in-memory store.
	Registry *channels.Registry
	// Settings may be nil, in which case only the games screen is offered.
	Settings  settings.Source
	Installer Installer
	Logger    *logrus.Entry
}

// Host owns the destination table, the back stack, and the transient drawer
// and FAB state, and routes user actions to the channel stores. A Host is
// driven from a single goroutine and is not safe for concurrent use.
type Host struct {
	registry  *channels.Registry
	source    settings.Source
	installer Installer
	logger    *logrus.Entry

	destinations *orderedmap.OrderedMap[string, Destination]
	routes       *settings.Routes
	gamesOnly    bool

	stack       []string
	drawerOpen  bool
	fabExpanded bool
}

// New creates a host. Call Start before navigating.
func New(opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	registry := opts.Registry
	if registry == nil {
		registry = channels.NewRegistry(prefs.NewMemory(), channels.DefaultSpecs(), logger)
	}
	return &Host{
		registry:     registry,
		source:       opts.Settings,
		installer:    opts.Installer,
		logger:       logger,
		destinations: orderedmap.New[string, Destination](),
		routes:       settings.Build(nil),
		stack:        []string{StartRoute},
	}
}

// Start resolves every channel category from persisted storage, loads the
// settings tree and registers all destinations. When no emulator library is
// attached the host offers the games screen alone.
func (h *Host) Start(ctx context.Context) error {
	h.registry.LoadAll()

	root, err := h.loadSettings(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeLibraryUnavailable) {
			return err
		}
		h.logger.WithError(err).Info("Emulator library unavailable, offering games only")
		h.gamesOnly = true
		h.routes = settings.Build(nil)
		h.destinations = h.buildTable(nil)
	} else {
		h.gamesOnly = false
		h.routes = settings.Build(root)
		h.destinations = h.buildTable(h.routes)
	}

	h.stack = []string{StartRoute}
	h.drawerOpen = false
	h.fabExpanded = false
	h.logger.WithField("destinations", h.destinations.Len()).Debug("Navigation host started")
	return nil
}

// RefreshSettings reloads the settings tree and re-registers the dynamic
// routes. Back-stack entries whose route disappeared are dropped. On error
// the previous table stays in place.
func (h *Host) RefreshSettings(ctx context.Context) error {
	root, err := h.loadSettings(ctx)
	if err != nil {
		return err
	}

	h.gamesOnly = false
	h.routes = settings.Build(root)
	h.destinations = h.buildTable(h.routes)
	h.trimStack()
	h.logger.WithField("settings_routes", h.routes.Len()).Debug("Settings routes refreshed")
	return nil
}

func (h *Host) loadSettings(ctx context.Context) (*settings.Group, error) {
	if h.source == nil {
		return nil, errors.New(errors.ErrCodeLibraryUnavailable, "no settings source attached")
	}
	return h.source.Load(ctx)
}

// buildTable registers the fixed destinations followed by one destination per
// settings route. A nil routes table registers games only.
func (h *Host) buildTable(routes *settings.Routes) *orderedmap.OrderedMap[string, Destination] {
	table := orderedmap.New[string, Destination]()
	table.Set(RouteGames, Destination{Route: RouteGames, Kind: KindGames, Title: "RPCSX"})
	if routes == nil {
		return table
	}

	table.Set(RouteUsers, Destination{Route: RouteUsers, Kind: KindUsers, Title: "Users"})
	table.Set(RouteSettings, Destination{Route: RouteSettings, Kind: KindSettings, Title: "Settings"})
	table.Set(RouteControls, Destination{Route: RouteControls, Kind: KindControls, Title: "Controls"})
	table.Set(RouteDrivers, Destination{Route: RouteDrivers, Kind: KindDrivers, Title: "GPU drivers"})
	table.Set(RouteUpdateChannels, Destination{Route: RouteUpdateChannels, Kind: KindUpdateChannels, Title: "Update channels"})

	for _, cat := range h.registry.Categories() {
		store, _ := h.registry.Store(cat)
		table.Set(cat.Route(), Destination{
			Route:    cat.Route(),
			Kind:     KindChannelList,
			Title:    store.Spec().Title,
			Category: cat,
		})
	}

	routes.Each(func(r settings.Route) bool {
		route := SettingsRoute(r.Path)
		table.Set(route, Destination{
			Route: route,
			Kind:  KindAdvancedSettings,
			Title: r.Path.Last(),
			Path:  r.Path,
		})
		return true
	})
	return table
}

func (h *Host) trimStack() {
	kept := h.stack[:0]
	for _, route := range h.stack {
		if _, ok := h.destinations.Get(route); ok {
			kept = append(kept, route)
		}
	}
	if len(kept) == 0 || kept[0] != StartRoute {
		kept = append([]string{StartRoute}, kept...)
	}
	h.stack = kept
}

// GamesOnly reports whether the host runs without an emulator library.
func (h *Host) GamesOnly() bool {
	return h.gamesOnly
}

// Registry exposes the channel stores.
func (h *Host) Registry() *channels.Registry {
	return h.registry
}

// Routes returns every registered route in registration order.
func (h *Host) Routes() []string {
	out := make([]string, 0, h.destinations.Len())
	for pair := h.destinations.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Destination looks up a registered route.
func (h *Host) Destination(route string) (Destination, bool) {
	return h.destinations.Get(route)
}

// Current returns the destination on top of the back stack.
func (h *Host) Current() Destination {
	d, _ := h.destinations.Get(h.stack[len(h.stack)-1])
	return d
}

// Stack returns a copy of the back stack, bottom first.
func (h *Host) Stack() []string {
	return append([]string(nil), h.stack...)
}

// Navigate pushes route onto the back stack.
func (h *Host) Navigate(route string) error {
	if _, ok := h.destinations.Get(route); !ok {
		return errors.RouteNotFound(route)
	}
	h.stack = append(h.stack, route)
	h.drawerOpen = false
	h.fabExpanded = false
	h.logger.WithField("route", route).Debug("Navigated")
	return nil
}

// NavigateUp pops the back stack. It reports false at the start destination.
func (h *Host) NavigateUp() bool {
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}

// Back handles the system back action: an open drawer is closed first and
// consumes the event, otherwise the back stack is popped.
func (h *Host) Back() bool {
	if h.drawerOpen {
		h.drawerOpen = false
		return true
	}
	return h.NavigateUp()
}

// DrawerOpen reports whether the navigation drawer is showing.
func (h *Host) DrawerOpen() bool { return h.drawerOpen }

// OpenDrawer shows the navigation drawer.
func (h *Host) OpenDrawer() { h.drawerOpen = true }

// CloseDrawer hides the navigation drawer.
func (h *Host) CloseDrawer() { h.drawerOpen = false }

// ToggleDrawer flips the drawer between shown and hidden.
func (h *Host) ToggleDrawer() { h.drawerOpen = !h.drawerOpen }

// FabExpanded reports whether the install actions are showing.
func (h *Host) FabExpanded() bool { return h.fabExpanded }

// ToggleFab expands or collapses the install actions.
func (h *Host) ToggleFab() { h.fabExpanded = !h.fabExpanded }

// HasInstaller reports whether install actions can do anything.
func (h *Host) HasInstaller() bool { return h.installer != nil }

// InstallPackage runs the FAB's package install action and collapses the FAB.
func (h *Host) InstallPackage(ctx context.Context) error {
	return h.PackageInstall()(ctx)
}

// InstallFolder runs the FAB's folder install action and collapses the FAB.
func (h *Host) InstallFolder(ctx context.Context) error {
	return h.FolderInstall()(ctx)
}

// PackageInstall collapses the FAB and returns the package install call.
// The returned func reads no host state and may run on another goroutine.
func (h *Host) PackageInstall() func(context.Context) error {
	return h.installAction("package", Installer.InstallPackage)
}

// FolderInstall collapses the FAB and returns the folder install call.
// The returned func reads no host state and may run on another goroutine.
func (h *Host) FolderInstall() func(context.Context) error {
	return h.installAction("folder", Installer.InstallFolder)
}

func (h *Host) installAction(what string, run func(Installer, context.Context) error) func(context.Context) error {
	h.fabExpanded = false
	installer, logger := h.installer, h.logger.WithField("install", what)
	return func(ctx context.Context) error {
		if installer == nil {
			return errors.New(errors.ErrCodeInstallerUnavailable, "no installer attached")
		}
		if err := run(installer, ctx); err != nil {
			logger.WithError(err).Warn("Install failed")
			return err
		}
		return nil
	}
}

// DrawerLinks returns the navigation entries of the games screen's drawer.
func (h *Host) DrawerLinks() []Link {
	if h.gamesOnly {
		return nil
	}
	return []Link{{Label: "Settings", Route: RouteSettings}}
}

// UpdateChannelLinks returns one link per channel category.
func (h *Host) UpdateChannelLinks() []Link {
	links := make([]Link, 0, len(h.registry.Categories()))
	for _, cat := range h.registry.Categories() {
		if d, ok := h.destinations.Get(cat.Route()); ok {
			links = append(links, Link{Label: d.Title, Route: d.Route})
		}
	}
	return links
}

// settingsPathOf extracts the settings path from a settings route.
func settingsPathOf(route string) (string, bool) {
	if !strings.HasPrefix(route, RouteSettings) {
		return "", false
	}
	return strings.TrimPrefix(route, RouteSettings), true
}
