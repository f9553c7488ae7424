package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/navcore/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out
func NewErrorHandler(verbose bool, out io.Writer) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle prints a message tailored to the error code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	var ne *errors.NavError
	if e, ok := err.(*errors.NavError); ok {
		ne = e
	}
	detail := func(key string) interface{} {
		if ne == nil || ne.Details == nil {
			return ""
		}
		return ne.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found at %v\n", detail("path"))

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(h.Out, "Run 'navcore config schema' to see the accepted fields.\n")

	case errors.ErrCodeUnknownCategory:
		fmt.Fprintf(h.Out, "❌ Unknown channel category '%v'\n", detail("category"))
		fmt.Fprintf(h.Out, "Known categories: gpu_driver, ui, rpcsx\n")

	case errors.ErrCodeRouteNotFound:
		fmt.Fprintf(h.Out, "❌ No destination registered for route '%v'\n", detail("route"))
		fmt.Fprintf(h.Out, "Run 'navcore routes' to list them.\n")

	case errors.ErrCodeSettingsUnavailable, errors.ErrCodeSettingsDecode:
		fmt.Fprintf(h.Out, "❌ Could not load the settings tree: %v\n", err)

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && ne != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", ne.ToJSON())
	}
	return err
}
