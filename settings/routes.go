package settings

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Route binds a group node to its path.
type Route struct {
	Path  Path
	Group *Group
}

// Routes is the result of Build: one route per group node below the root,
// keyed by the path's string form and kept in registration order.
type Routes struct {
	root   *Group
	routes *orderedmap.OrderedMap[string, Route]
}

// Build walks the tree depth-first, children in their own order, and
// registers a route for every group before descending into it. Leaves and
// other non-group values contribute nothing. The tree must be acyclic.
func Build(root *Group) *Routes {
	r := &Routes{
		root:   root,
		routes: orderedmap.New[string, Route](),
	}
	if root != nil {
		r.walk(root, nil)
	}
	return r
}

func (r *Routes) walk(g *Group, parent Path) {
	g.Each(func(key string, n Node) bool {
		child, ok := n.(*Group)
		if !ok {
			return true
		}
		p := parent.Child(key)
		r.routes.Set(p.String(), Route{Path: p, Group: child})
		r.walk(child, p)
		return true
	})
}

// Len returns the number of routes.
func (r *Routes) Len() int {
	return r.routes.Len()
}

// Get looks up a route by the string form of its path.
func (r *Routes) Get(path string) (Route, bool) {
	return r.routes.Get(path)
}

// Group resolves a path string to its group. The empty path is the root.
func (r *Routes) Group(path string) (*Group, bool) {
	if path == "" {
		return r.root, r.root != nil
	}
	route, ok := r.routes.Get(path)
	if !ok {
		return nil, false
	}
	return route.Group, true
}

// Paths returns the path strings in registration order.
func (r *Routes) Paths() []string {
	paths := make([]string, 0, r.routes.Len())
	for pair := r.routes.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Each calls fn for every route in registration order until fn returns false.
func (r *Routes) Each(fn func(Route) bool) {
	for pair := r.routes.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value) {
			return
		}
	}
}
