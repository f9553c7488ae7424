package channels

import "strings"

// Category identifies one independently persisted channel list.
// The values double as the prefix of the persisted keys.
type Category string

const (
	GPUDriver    Category = "gpu_driver"
	UIPackage    Category = "ui"
	EmulatorCore Category = "rpcsx"
)

// Built-in default channel identifiers.
const (
	DefaultGPUDriverChannel = "K11MCH1/AdrenoToolsDrivers"
	ReleaseUIChannel        = "RPCSX/rpcsx-ui-android"
	DevUIChannel            = "RPCSX/rpcsx-ui-android-build"
	ReleaseRPCSXChannel     = "RPCSX/rpcsx-build"
	DevRPCSXChannel         = "RPCSX/rpcsx-build-dev"
)

var allCategories = []Category{GPUDriver, UIPackage, EmulatorCore}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// ParseCategory accepts the persisted prefix as well as the descriptive
// aliases used on the command line.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gpu_driver", "gpu-driver", "driver", "drivers":
		return GPUDriver, true
	case "ui", "ui-package", "ui_package":
		return UIPackage, true
	case "rpcsx", "emulator-core", "emulator_core", "core":
		return EmulatorCore, true
	}
	return "", false
}

// ListKey is the persisted key of the category's channel list.
func (c Category) ListKey() string { return string(c) + "_channel_list" }

// SelectionKey is the persisted key of the category's selected channel.
func (c Category) SelectionKey() string { return string(c) + "_channel" }

// Route is the navigation route of the category's channel list screen.
func (c Category) Route() string { return string(c) + "_channels" }

// Spec describes a category: its defaults and whether reserved-name
// validation and label mapping apply to it.
type Spec struct {
	Category  Category
	Title     string
	Defaults  Defaults
	Validated bool
}

// DefaultSpecs returns the built-in category descriptions.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Category: GPUDriver,
			Title:    "Driver download channel",
			Defaults: Defaults{Release: DefaultGPUDriverChannel},
		},
		{
			Category:  UIPackage,
			Title:     "UI update channel",
			Defaults:  Defaults{Release: ReleaseUIChannel, Development: DevUIChannel},
			Validated: true,
		},
		{
			Category:  EmulatorCore,
			Title:     "RPCSX download channel",
			Defaults:  Defaults{Release: ReleaseRPCSXChannel, Development: DevRPCSXChannel},
			Validated: true,
		},
	}
}

// IsReserved reports whether candidate is one of the category's four
// protected tokens: the two labels and the two default identifiers.
func (s Spec) IsReserved(candidate string) bool {
	switch candidate {
	case LabelRelease, LabelDevelopment, s.Defaults.Release:
		return true
	}
	return s.Defaults.Development != "" && candidate == s.Defaults.Development
}

// DisplayLabel maps id to what the channel screen shows. Categories without
// validation show raw identifiers.
func (s Spec) DisplayLabel(id string) string {
	if !s.Validated {
		return id
	}
	return s.Defaults.ToLabel(id)
}

// ParseLabel maps a label from the channel screen back to an identifier.
func (s Spec) ParseLabel(label string) string {
	if !s.Validated {
		return label
	}
	return s.Defaults.FromLabel(label)
}
