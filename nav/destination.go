// Package nav composes the channel stores and the settings routes into the
// application's navigation host.
package nav

import (
	"context"

	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/settings"
)

// Fixed routes.
const (
	RouteGames          = "games"
	RouteUsers          = "users"
	RouteSettings       = "settings"
	RouteControls       = "controls"
	RouteDrivers        = "drivers"
	RouteUpdateChannels = "update_channels"
)

// StartRoute is the bottom of the back stack.
const StartRoute = RouteGames

// Kind classifies a destination so a front end knows which screen to draw.
type Kind int

const (
	KindGames Kind = iota
	KindUsers
	KindSettings
	KindControls
	KindDrivers
	KindUpdateChannels
	KindChannelList
	KindAdvancedSettings
)

func (k Kind) String() string {
	switch k {
	case KindGames:
		return "games"
	case KindUsers:
		return "users"
	case KindSettings:
		return "settings"
	case KindControls:
		return "controls"
	case KindDrivers:
		return "drivers"
	case KindUpdateChannels:
		return "update-channels"
	case KindChannelList:
		return "channel-list"
	case KindAdvancedSettings:
		return "advanced-settings"
	default:
		return "unknown"
	}
}

// Destination is one registered route.
type Destination struct {
	Route string
	Kind  Kind
	Title string
	// Category is set for KindChannelList.
	Category channels.Category
	// Path is set for KindAdvancedSettings.
	Path settings.Path
}

// SettingsRoute returns the route of the advanced settings screen for p.
func SettingsRoute(p settings.Path) string {
	return RouteSettings + p.String()
}

// Link is an entry a screen offers for navigation.
type Link struct {
	Label string
	Route string
}

// Installer performs the package installs offered by the games screen's
// floating action button.
type Installer interface {
	InstallPackage(ctx context.Context) error
	InstallFolder(ctx context.Context) error
}
