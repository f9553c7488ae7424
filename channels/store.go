package channels

import (
	"sync"

	"github.com/grovetools/navcore/prefs"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Snapshot is a copy of one category's list and selection.
type Snapshot struct {
	Category Category
	List     []string
	Selected string
}

// Store owns one category's channel list and selection. The in-memory mirror
// and the persisted copy are updated together under one lock, so a Load after
// any mutation observes it.
//
// Mutators are deliberately permissive: Remove deletes whatever it is asked
// to. Callers that need the protected-entry rule consult IsDeletable first.
type Store struct {
	spec   Spec
	kv     prefs.KV
	logger *logrus.Entry

	mu       sync.Mutex
	loaded   bool
	list     []string
	selected string
	subs     []chan Snapshot
}

// NewStore creates the store for spec backed by kv. Nothing is read until the
// first Load, Snapshot or mutation.
func NewStore(spec Spec, kv prefs.KV, logger *logrus.Entry) *Store {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		spec:   spec,
		kv:     kv,
		logger: logger.WithField("category", string(spec.Category)),
	}
}

// Spec returns the category description the store enforces.
func (s *Store) Spec() Spec {
	return s.spec
}

// Load re-reads the category from the key-value store, falling back to the
// built-in list when the persisted one is absent, empty or malformed, and to
// the release default when no selection is persisted. A fallback selection is
// written back so later loads are stable.
func (s *Store) Load() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	snap := s.snapshotLocked()
	s.publishLocked(snap)
	return snap
}

func (s *Store) loadLocked() {
	list, ok := s.kv.GetStringList(s.spec.Category.ListKey())
	list = dedupe(list)
	if !ok || len(list) == 0 {
		s.logger.Debug("No persisted channel list, using defaults")
		list = s.spec.Defaults.List()
	}

	selected, ok := s.kv.GetString(s.spec.Category.SelectionKey())
	if !ok || selected == "" {
		selected = s.spec.Defaults.Release
		s.logger.WithField("channel", selected).Debug("No persisted selection, writing release default")
		s.kv.SetString(s.spec.Category.SelectionKey(), selected)
	}

	s.list = list
	s.selected = selected
	s.loaded = true
}

func (s *Store) ensureLoadedLocked() {
	if !s.loaded {
		s.loadLocked()
	}
}

// Snapshot returns the current mirror, loading it on first use.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.snapshotLocked()
}

// Add appends candidate and persists the list. It is a no-op when candidate
// is already listed or, for validated categories, is a reserved token.
func (s *Store) Add(candidate string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	log := s.logger.WithField("channel", candidate)
	if indexOf(s.list, candidate) >= 0 {
		log.Debug("Channel already listed, ignoring add")
		return s.copyList()
	}
	if s.spec.Validated && s.spec.IsReserved(candidate) {
		log.Debug("Channel collides with a reserved name, ignoring add")
		return s.copyList()
	}

	s.list = append(s.list, candidate)
	s.persistListLocked()
	log.Debug("Channel added")
	return s.copyList()
}

// Remove deletes the first occurrence of target and persists the list.
// No guard is applied here; see IsDeletable.
func (s *Store) Remove(target string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	i := indexOf(s.list, target)
	if i < 0 {
		return s.copyList()
	}
	s.list = append(s.list[:i:i], s.list[i+1:]...)
	s.persistListLocked()
	s.logger.WithField("channel", target).Debug("Channel removed")
	return s.copyList()
}

// Select persists id as the current selection. Membership in the list is not
// checked.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	s.selected = id
	s.kv.SetString(s.spec.Category.SelectionKey(), id)
	s.logger.WithField("channel", id).Debug("Channel selected")
	s.publishLocked(s.snapshotLocked())
}

// IsDeletable is the guard the channel screen applies before offering
// deletion. For the driver category any entry may go while more than one
// remains; for validated categories reserved tokens never may.
func (s *Store) IsDeletable(target string) bool {
	if s.spec.Validated {
		return !s.spec.IsReserved(target)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return len(s.list) > 1
}

// IsReserved reports whether candidate is one of the category's reserved tokens.
func (s *Store) IsReserved(candidate string) bool {
	return s.spec.IsReserved(candidate)
}

// Subscribe returns a feed of snapshots emitted after every load and
// mutation, and a func that cancels the subscription. Snapshots are dropped
// for a subscriber whose buffer is full.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub == ch {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) persistListLocked() {
	s.kv.SetStringList(s.spec.Category.ListKey(), s.list)
	s.publishLocked(s.snapshotLocked())
}

func (s *Store) publishLocked(snap Snapshot) {
	for _, sub := range s.subs {
		select {
		case sub <- Snapshot{Category: snap.Category, List: append([]string(nil), snap.List...), Selected: snap.Selected}:
		default:
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Category: s.spec.Category,
		List:     s.copyList(),
		Selected: s.selected,
	}
}

func (s *Store) copyList() []string {
	return append([]string(nil), s.list...)
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}

// dedupe keeps the first occurrence of each entry.
func dedupe(list []string) []string {
	if len(list) == 0 {
		return list
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
