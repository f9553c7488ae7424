// Package settings models the runtime settings tree and derives one
// navigable route per group node.
package settings

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TypeKey marks an object as a terminal setting.
const TypeKey = "type"

// Node is either a *Leaf or a *Group.
type Node interface {
	isNode()
}

// Leaf is a terminal setting. Objects carrying TypeKey become leaves with
// Type set; scalars and arrays become leaves with an empty Type. The payload
// is opaque to navigation.
type Leaf struct {
	Type    string
	Payload any
}

// Group is a mapping of further settings. Children keep the order in which
// the source enumerated them.
type Group struct {
	children *orderedmap.OrderedMap[string, Node]
}

func (*Leaf) isNode()  {}
func (*Group) isNode() {}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{children: orderedmap.New[string, Node]()}
}

// Set adds or replaces a child. Replacing keeps the child's position.
func (g *Group) Set(key string, n Node) {
	g.children.Set(key, n)
}

// Get returns the child stored under key.
func (g *Group) Get(key string) (Node, bool) {
	return g.children.Get(key)
}

// Len returns the number of children.
func (g *Group) Len() int {
	return g.children.Len()
}

// Keys returns child keys in enumeration order.
func (g *Group) Keys() []string {
	keys := make([]string, 0, g.children.Len())
	for pair := g.children.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every child in order until fn returns false.
func (g *Group) Each(fn func(key string, n Node) bool) {
	for pair := g.children.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Entry describes one child of a group for the advanced settings screen.
type Entry struct {
	Key     string
	Node    Node
	IsGroup bool
	// Type is the leaf's type marker; empty for groups and untyped leaves.
	Type string
}

// Entries lists the group's children classified for display.
func (g *Group) Entries() []Entry {
	entries := make([]Entry, 0, g.Len())
	g.Each(func(key string, n Node) bool {
		e := Entry{Key: key, Node: n}
		switch v := n.(type) {
		case *Group:
			e.IsGroup = true
		case *Leaf:
			e.Type = v.Type
		}
		entries = append(entries, e)
		return true
	})
	return entries
}

// CountGroups returns the number of group nodes strictly below g.
func (g *Group) CountGroups() int {
	n := 0
	g.Each(func(_ string, child Node) bool {
		if sub, ok := child.(*Group); ok {
			n += 1 + sub.CountGroups()
		}
		return true
	})
	return n
}
