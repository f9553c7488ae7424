package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *NavError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *NavError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RouteNotFound creates an error for a navigation target that was never registered
func RouteNotFound(route string) *NavError {
	return New(ErrCodeRouteNotFound, fmt.Sprintf("no destination registered for route '%s'", route)).
		WithDetail("route", route)
}

// UnknownCategory creates an error for a channel category the registry does not hold
func UnknownCategory(category string) *NavError {
	return New(ErrCodeUnknownCategory, fmt.Sprintf("unknown channel category '%s'", category)).
		WithDetail("category", category)
}

// SettingsUnavailable wraps a failure to read the settings tree from its source
func SettingsUnavailable(source string, err error) *NavError {
	return Wrap(err, ErrCodeSettingsUnavailable, fmt.Sprintf("settings tree unavailable from %s", source)).
		WithDetail("source", source)
}

// SettingsDecode wraps a failure to classify raw settings data into a tree
func SettingsDecode(format string, err error) *NavError {
	return Wrap(err, ErrCodeSettingsDecode, fmt.Sprintf("failed to decode %s settings tree", format)).
		WithDetail("format", format)
}

// InvalidPath creates an error for a route path string that cannot be parsed
func InvalidPath(path string, reason string) *NavError {
	return New(ErrCodeInvalidPath, fmt.Sprintf("invalid settings path %q: %s", path, reason)).
		WithDetail("path", path)
}
