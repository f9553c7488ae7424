package settings

import (
	"testing"

	"github.com/grovetools/navcore/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{nil, ""},
		{Path{"video"}, "@@video"},
		{Path{"video", "renderer"}, "@@video@@renderer"},
		{Path{"Core", "PPU Decoder"}, "@@Core@@PPU Decoder"},
		{Path{"a@@b"}, "@@a%40%40b"},
		{Path{"100%"}, "@@100%25"},
		{Path{""}, "@@"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())

			parsed, err := ParsePath(tt.want)
			require.NoError(t, err)
			assert.Equal(t, len(tt.path), len(parsed))
			for i := range tt.path {
				assert.Equal(t, tt.path[i], parsed[i])
			}
		})
	}
}

func TestParsePathRejects(t *testing.T) {
	for _, s := range []string{"video", "@@a@b", "@@bad%zz", "@@trailing%4", "@@x%"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParsePath(s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
		})
	}
}

func TestChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "root"

	a := base.Child("a")
	b := base.Child("b")
	assert.Equal(t, Path{"root", "a"}, a)
	assert.Equal(t, Path{"root", "b"}, b)
	assert.Equal(t, Path{"root"}, base)
}

func TestParentAndLast(t *testing.T) {
	p := Path{"video", "advanced"}
	assert.Equal(t, "advanced", p.Last())
	assert.Equal(t, Path{"video"}, p.Parent())
	assert.True(t, Path(nil).IsRoot())
	assert.True(t, Path{"video"}.Parent().IsRoot())
	assert.Equal(t, "", Path(nil).Last())
}
