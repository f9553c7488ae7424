package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File is a KV persisted as a YAML document. Reads are served from an
// in-memory copy; every write updates the copy and then rewrites the file.
type File struct {
	path   string
	logger *logrus.Entry

	mu      sync.RWMutex
	data    map[string]interface{}
	lastErr error
}

// Open loads the preferences file at path. A missing file yields an empty
// store and an unparsable one is treated as empty. Only errors that make the
// file unreadable are returned.
func Open(path string, logger *logrus.Entry) (*File, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	f := &File{
		path:   path,
		logger: logger.WithField("prefs", path),
		data:   make(map[string]interface{}),
	}

	data, err := f.read()
	if err != nil {
		return nil, err
	}
	f.data = data
	return f, nil
}

// Path returns the file backing the store.
func (f *File) Path() string {
	return f.path
}

func (f *File) read() (map[string]interface{}, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]interface{}), nil
		}
		return nil, fmt.Errorf("read prefs file: %w", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		f.logger.WithError(err).Warn("Preferences file is malformed, starting empty")
		return make(map[string]interface{}), nil
	}
	if data == nil {
		data = make(map[string]interface{})
	}
	return data, nil
}

// Reload replaces the in-memory copy with the file's current content.
func (f *File) Reload() error {
	data, err := f.read()
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.data = data
	f.mu.Unlock()
	return nil
}

// GetString returns the cached string at key.
func (f *File) GetString(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return asString(f.data[key])
}

// SetString updates the cache and rewrites the file. Write errors are
// logged and kept for Flush.
func (f *File) SetString(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.save()
}

// GetStringList returns a copy of the cached list at key.
func (f *File) GetStringList(key string) ([]string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return asStringList(f.data[key])
}

// SetStringList updates the cache and rewrites the file.
func (f *File) SetStringList(key string, values []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]string(nil), values...)
	f.save()
}

// Delete removes a key.
func (f *File) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.save()
}

// Keys returns the stored keys in sorted order.
func (f *File) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.data)
}

// Flush reports the error of the most recent write, if any.
func (f *File) Flush() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

// save writes the document through a temp file and rename so readers never
// see a partial file. Must be called with mu held.
func (f *File) save() {
	f.lastErr = f.write()
	if f.lastErr != nil {
		f.logger.WithError(f.lastErr).Warn("Failed to persist preferences")
	}
}

func (f *File) write() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}

	out, err := yaml.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yml")
	if err != nil {
		return fmt.Errorf("create temp prefs file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write prefs file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close prefs file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace prefs file: %w", err)
	}
	return nil
}
