package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok := m.GetString("ui_channel")
	assert.False(t, ok, "absent key should not be found")

	m.SetString("ui_channel", "RPCSX/rpcsx-ui-android")
	got, ok := m.GetString("ui_channel")
	assert.True(t, ok)
	assert.Equal(t, "RPCSX/rpcsx-ui-android", got)

	m.SetStringList("ui_channel_list", []string{"a", "b"})
	list, ok := m.GetStringList("ui_channel_list")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list)

	assert.Equal(t, []string{"ui_channel", "ui_channel_list"}, m.Keys())
}

func TestMemoryCopiesLists(t *testing.T) {
	m := NewMemory()
	in := []string{"a", "b"}
	m.SetStringList("k", in)
	in[0] = "mutated"

	out, _ := m.GetStringList("k")
	assert.Equal(t, []string{"a", "b"}, out)

	out[1] = "mutated"
	again, _ := m.GetStringList("k")
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestMalformedValuesReadAsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"number where list expected", 42},
		{"mixed list", []interface{}{"a", 3}},
		{"map", map[string]interface{}{"a": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			m.Put("k", tt.value)
			_, ok := m.GetStringList("k")
			assert.False(t, ok)
			_, ok = m.GetString("k")
			assert.False(t, ok)
		})
	}
}

func TestInterfaceListIsAccepted(t *testing.T) {
	m := NewMemory()
	m.Put("k", []interface{}{"x", "y"})
	list, ok := m.GetStringList("k")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, list)
}
