package errors

import (
	"fmt"
	"testing"
)

func TestNavError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeRouteNotFound, "route not found")
	if err.Code != ErrCodeRouteNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRouteNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeSettingsUnavailable, "settings unavailable")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeSettingsUnavailable) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeRouteNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("route", "games").WithDetail("depth", 2)
	if detailed.Details["route"] != "games" {
		t.Error("WithDetail should add details")
	}
}

func TestIsThroughFmtWrap(t *testing.T) {
	inner := UnknownCategory("bogus")
	outer := fmt.Errorf("channels list: %w", inner)

	if !Is(outer, ErrCodeUnknownCategory) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeUnknownCategory {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodeUnknownCategory)
	}
	if Is(nil, ErrCodeUnknownCategory) {
		t.Error("Is(nil) should be false")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode on a plain error should be empty")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := RouteNotFound("settings@@video")
	if err.Code != ErrCodeRouteNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRouteNotFound, err.Code)
	}
	if err.Details["route"] != "settings@@video" {
		t.Error("RouteNotFound should include route detail")
	}

	err = SettingsDecode("json", fmt.Errorf("unexpected end"))
	if err.Code != ErrCodeSettingsDecode {
		t.Errorf("expected code %s, got %s", ErrCodeSettingsDecode, err.Code)
	}
	if err.Details["format"] != "json" {
		t.Error("SettingsDecode should include format detail")
	}
	if err.Cause == nil {
		t.Error("SettingsDecode should keep its cause")
	}
}
