package engine

import (
	"reflect"
	"testing"
)

func TestMergeLinkGroupsDisjoint(t *testing.T) {
	groups := mergeLinkGroups([][]string{
		{"web", "db"},
		{"worker", "queue"},
	})

	if len(groups) != 2 {
		t.Fatalf("Expected 2 disjoint groups, got %d: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups[0], []string{"db", "web"}) {
		t.Errorf("Expected first group [db web], got %v", groups[0])
	}
	if !reflect.DeepEqual(groups[1], []string{"queue", "worker"}) {
		t.Errorf("Expected second group [queue worker], got %v", groups[1])
	}
}

func TestMergeLinkGroupsOverlap(t *testing.T) {
	// db appears in both declarations, so all three services merge.
	groups := mergeLinkGroups([][]string{
		{"web", "db"},
		{"db", "backup"},
	})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 merged group, got %d: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups[0], []string{"backup", "db", "web"}) {
		t.Errorf("Expected merged group [backup db web], got %v", groups[0])
	}
}

func TestMergeLinkGroupsTransitive(t *testing.T) {
	// Two separate groups joined afterwards by a bridging declaration.
	groups := mergeLinkGroups([][]string{
		{"a", "b"},
		{"c", "d"},
		{"b", "c"},
	})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group after transitive merge, got %d: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups[0], []string{"a", "b", "c", "d"}) {
		t.Errorf("Expected group [a b c d], got %v", groups[0])
	}
}

func TestMergeLinkGroupsEveryNameOnce(t *testing.T) {
	sets := [][]string{
		{"a", "b"},
		{"b", "c"},
		{"d", "e"},
		{"e", "a"},
		{"f", "g"},
	}

	groups := mergeLinkGroups(sets)

	counts := make(map[string]int)
	for _, group := range groups {
		for _, name := range group {
			counts[name]++
		}
	}
	for _, set := range sets {
		for _, name := range set {
			if counts[name] != 1 {
				t.Errorf("Expected %q in exactly one group, found %d", name, counts[name])
			}
		}
	}
}

func TestMergeLinkGroupsEmpty(t *testing.T) {
	if groups := mergeLinkGroups(nil); len(groups) != 0 {
		t.Errorf("Expected no groups for no declarations, got %v", groups)
	}
}
