package settings

import (
	"context"
	"os"

	"github.com/grovetools/navcore/errors"
)

// Source supplies the current settings tree. It stands in for the emulator
// library, which owns the authoritative configuration.
type Source interface {
	Load(ctx context.Context) (*Group, error)
}

// FileSource reads the tree from a JSON or YAML file. An empty Path means no
// library is attached.
type FileSource struct {
	Path string
}

// Load reads Path and decodes it with the decoder its extension names.
func (s FileSource) Load(ctx context.Context) (*Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, errors.New(errors.ErrCodeLibraryUnavailable, "no settings source configured")
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.SettingsUnavailable(s.Path, err)
	}
	root, err := Decode(data, DetectFormat(s.Path, data))
	if err != nil {
		return nil, err
	}
	return root, nil
}

// StaticSource always returns the same tree.
type StaticSource struct {
	Root *Group
}

// Load returns Root.
func (s StaticSource) Load(context.Context) (*Group, error) {
	if s.Root == nil {
		return NewGroup(), nil
	}
	return s.Root, nil
}
