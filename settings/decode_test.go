package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/navcore/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONKeepsOrder(t *testing.T) {
	root, err := DecodeJSON([]byte(`{"zeta": {}, "alpha": {}, "mid": {"type": "int"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, root.Keys())
}

func TestDecodeJSONClassifies(t *testing.T) {
	root, err := DecodeJSON([]byte(`{
		"group": {"inner": {"type": "string", "value": "x"}},
		"leaf": {"type": "bool"},
		"odd type": {"type": 7},
		"number": 1.5,
		"text": "hi\n",
		"flag": true,
		"nothing": null,
		"list": [1, 2]
	}`))
	require.NoError(t, err)

	n, _ := root.Get("group")
	assert.IsType(t, &Group{}, n)

	n, _ = root.Get("leaf")
	require.IsType(t, &Leaf{}, n)
	assert.Equal(t, "bool", n.(*Leaf).Type)

	n, _ = root.Get("odd type")
	require.IsType(t, &Leaf{}, n)
	assert.Equal(t, "7", n.(*Leaf).Type)

	n, _ = root.Get("number")
	assert.Equal(t, 1.5, n.(*Leaf).Payload)
	n, _ = root.Get("text")
	assert.Equal(t, "hi\n", n.(*Leaf).Payload)
	n, _ = root.Get("flag")
	assert.Equal(t, true, n.(*Leaf).Payload)
	n, _ = root.Get("nothing")
	assert.Nil(t, n.(*Leaf).Payload)
	n, _ = root.Get("list")
	assert.Equal(t, "", n.(*Leaf).Type)
}

func TestDecodeJSONErrors(t *testing.T) {
	for _, doc := range []string{`[1, 2]`, `"text"`, ``} {
		_, err := DecodeJSON([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, errors.ErrCodeSettingsDecode), doc)
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
video:
  renderer:
    type: enum
    values: [Vulkan, Null]
  advanced:
    vsync:
      type: bool
core: &core
  ppu: {}
copy: *core
scalar: 3
`
	root, err := DecodeYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"video", "core", "copy", "scalar"}, root.Keys())

	routes := Build(root)
	assert.Equal(t, []string{"@@video", "@@video@@advanced", "@@core", "@@core@@ppu", "@@copy", "@@copy@@ppu"}, routes.Paths())

	video, _ := root.Get("video")
	renderer, _ := video.(*Group).Get("renderer")
	require.IsType(t, &Leaf{}, renderer)
	assert.Equal(t, "enum", renderer.(*Leaf).Type)
}

func TestDecodeYAMLEdgeCases(t *testing.T) {
	root, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Len())

	_, err = DecodeYAML([]byte("- a\n- b\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeSettingsDecode))
}

func TestDecodeYAMLAliases(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"self reference", "video: &v\n  inner: *v\n"},
		{"ancestor reference", "core: &c\n  ppu:\n    back: *c\n"},
		{"nested self reference", "a:\n  b: &b\n    c:\n      d: *b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeSettingsDecode))
		})
	}

	t.Run("expansion limit", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("l0: &l0\n  leaf: {}\n")
		for level := 1; level <= 4; level++ {
			fmt.Fprintf(&b, "l%d: &l%d\n", level, level)
			for i := 0; i < 10; i++ {
				fmt.Fprintf(&b, "  k%d: *l%d\n", i, level-1)
			}
		}
		_, err := DecodeYAML([]byte(b.String()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeSettingsDecode))
	})

	t.Run("sibling reuse", func(t *testing.T) {
		root, err := DecodeYAML([]byte("a: &x\n  b: {}\nc: *x\nd: *x\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"@@a", "@@a@@b", "@@c", "@@c@@b", "@@d", "@@d@@b"}, Build(root).Paths())
	})
}

func TestFromMapSortsKeys(t *testing.T) {
	root := FromMap(map[string]any{
		"b": map[string]any{"x": map[string]any{}},
		"a": map[string]any{"type": "int"},
		"c": 4,
	})
	assert.Equal(t, []string{"a", "b", "c"}, root.Keys())
	assert.Equal(t, []string{"@@b", "@@b@@x"}, Build(root).Paths())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("s.json", nil))
	assert.Equal(t, FormatYAML, DetectFormat("s.YML", nil))
	assert.Equal(t, FormatJSON, DetectFormat("settings", []byte("  {\"a\": 1}")))
	assert.Equal(t, FormatYAML, DetectFormat("settings", []byte("a: 1")))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(videoTree), 0644))

	root, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, Build(root).Len())

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Load(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeSettingsUnavailable))

	_, err = FileSource{}.Load(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeLibraryUnavailable))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{Path: path}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
