// Package prefs is the persisted key-value facility behind the channel stores.
//
// Values are either strings or string lists. Writes are fire-and-forget from
// the caller's point of view but are visible to the very next read.
package prefs

import (
	"sort"
	"sync"
)

// KV is the string-keyed preference store consumed by the channel stores.
type KV interface {
	// GetString returns the value and true when key holds a string.
	GetString(key string) (string, bool)
	SetString(key, value string)
	// GetStringList returns the value and true when key holds a list of strings.
	GetStringList(key string) ([]string, bool)
	SetStringList(key string, values []string)
}

// Memory is a map-backed KV. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]interface{})}
}

// Put stores an arbitrary value, bypassing the typed setters. It exists so
// callers can seed malformed state.
func (m *Memory) Put(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// GetString returns the string at key; wrong-typed values report false.
func (m *Memory) GetString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return asString(m.data[key])
}

// SetString stores value at key.
func (m *Memory) SetString(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// GetStringList returns a copy of the list at key. A list holding a
// non-string element reports false.
func (m *Memory) GetStringList(key string) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return asStringList(m.data[key])
}

// SetStringList stores a copy of values at key.
func (m *Memory) SetStringList(key string, values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]string(nil), values...)
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.data)
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asStringList accepts []string as well as the []interface{} shape produced
// by YAML decoding. A list holding any non-string element is malformed.
func asStringList(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys(data map[string]interface{}) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
