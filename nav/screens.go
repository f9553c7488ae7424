package nav

import (
	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/settings"
)

// ChannelItem is one row of a channel screen.
type ChannelItem struct {
	Label     string
	ID        string
	Selected  bool
	Deletable bool
}

// ChannelScreen is the view model of one category's channel list.
type ChannelScreen struct {
	Category channels.Category
	Title    string
	Items    []ChannelItem
}

// ChannelScreen builds the view model for cat.
func (h *Host) ChannelScreen(cat channels.Category) (ChannelScreen, error) {
	store, err := h.store(cat)
	if err != nil {
		return ChannelScreen{}, err
	}

	spec := store.Spec()
	snap := store.Snapshot()
	screen := ChannelScreen{
		Category: cat,
		Title:    spec.Title,
		Items:    make([]ChannelItem, 0, len(snap.List)),
	}
	for _, id := range snap.List {
		screen.Items = append(screen.Items, ChannelItem{
			Label:     spec.DisplayLabel(id),
			ID:        id,
			Selected:  id == snap.Selected,
			Deletable: store.IsDeletable(id),
		})
	}
	return screen, nil
}

// AddChannel adds the channel the user typed. It returns the resulting list.
func (h *Host) AddChannel(cat channels.Category, label string) ([]string, error) {
	store, err := h.store(cat)
	if err != nil {
		return nil, err
	}
	return store.Add(store.Spec().ParseLabel(label)), nil
}

// DeleteChannel removes the channel shown as label unless it is protected.
// It reports whether anything was removed.
func (h *Host) DeleteChannel(cat channels.Category, label string) (bool, error) {
	store, err := h.store(cat)
	if err != nil {
		return false, err
	}
	id := store.Spec().ParseLabel(label)
	if !store.IsDeletable(id) {
		h.logger.WithField("channel", id).Debug("Refusing to delete protected channel")
		return false, nil
	}
	before := len(store.Snapshot().List)
	return len(store.Remove(id)) < before, nil
}

// SelectChannel persists the channel shown as label as the category's
// selection and returns to the previous screen.
func (h *Host) SelectChannel(cat channels.Category, label string) error {
	store, err := h.store(cat)
	if err != nil {
		return err
	}
	store.Select(store.Spec().ParseLabel(label))
	h.NavigateUp()
	return nil
}

func (h *Host) store(cat channels.Category) (*channels.Store, error) {
	store, ok := h.registry.Store(cat)
	if !ok {
		return nil, errors.UnknownCategory(string(cat))
	}
	return store, nil
}

// SettingsEntry is one row of an advanced settings screen. Route is set for
// group entries only.
type SettingsEntry struct {
	Key     string
	Route   string
	IsGroup bool
	Type    string
}

// SettingsScreen is the view model of a settings group.
type SettingsScreen struct {
	Route   string
	Path    settings.Path
	Entries []SettingsEntry
	// Links holds the fixed destinations shown on the root screen.
	Links []Link
}

// SettingsScreen builds the view model for the root settings route or any
// advanced settings route.
func (h *Host) SettingsScreen(route string) (SettingsScreen, error) {
	dest, ok := h.destinations.Get(route)
	if !ok || (dest.Kind != KindSettings && dest.Kind != KindAdvancedSettings) {
		return SettingsScreen{}, errors.RouteNotFound(route)
	}
	pathStr, _ := settingsPathOf(route)
	group, ok := h.routes.Group(pathStr)
	if !ok {
		return SettingsScreen{}, errors.RouteNotFound(route)
	}

	screen := SettingsScreen{Route: route, Path: dest.Path}
	for _, e := range group.Entries() {
		entry := SettingsEntry{Key: e.Key, IsGroup: e.IsGroup, Type: e.Type}
		if e.IsGroup {
			entry.Route = SettingsRoute(dest.Path.Child(e.Key))
		}
		screen.Entries = append(screen.Entries, entry)
	}

	if dest.Kind == KindSettings {
		for _, r := range []string{RouteUsers, RouteControls, RouteDrivers, RouteUpdateChannels} {
			if d, ok := h.destinations.Get(r); ok {
				screen.Links = append(screen.Links, Link{Label: d.Title, Route: d.Route})
			}
		}
	}
	return screen, nil
}
