package engine

import "sort"

// disjointSet is a union-find structure over service names, used to
// merge overlapping link declarations into disjoint groups.
type disjointSet struct {
	parent map[string]string
	order  []string
}

func newDisjointSet() *disjointSet {
	return &disjointSet{parent: make(map[string]string)}
}

func (d *disjointSet) add(name string) {
	if _, ok := d.parent[name]; !ok {
		d.parent[name] = name
		d.order = append(d.order, name)
	}
}

func (d *disjointSet) find(name string) string {
	root := name
	for d.parent[root] != root {
		root = d.parent[root]
	}
	// path compression
	for d.parent[name] != root {
		d.parent[name], name = root, d.parent[name]
	}
	return root
}

func (d *disjointSet) union(a, b string) {
	rootA, rootB := d.find(a), d.find(b)
	if rootA != rootB {
		d.parent[rootB] = rootA
	}
}

// mergeLinkGroups merges the raw link declarations into disjoint groups:
// any two declarations sharing at least one name end up in the same
// group. Groups come out ordered by the first appearance of any member,
// members sorted by name.
func mergeLinkGroups(sets [][]string) [][]string {
	d := newDisjointSet()
	for _, set := range sets {
		for _, name := range set {
			d.add(name)
			d.union(set[0], name)
		}
	}

	members := make(map[string][]string)
	var roots []string
	for _, name := range d.order {
		root := d.find(name)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		members[root] = append(members[root], name)
	}

	groups := make([][]string, 0, len(roots))
	for _, root := range roots {
		group := members[root]
		sort.Strings(group)
		groups = append(groups, group)
	}
	return groups
}
