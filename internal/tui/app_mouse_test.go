package tui

import (
	"testing"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)

	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 1 // leading space before the first tab

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)

			// First, middle and last column of the tab all hit it
			for _, x := range []int{pos, pos + w/2, pos + w - 1} {
				if got := a.tabAtX(x); got != i {
					t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
				}
			}

			pos += w
			if i < n-1 {
				// Separator columns belong to no tab
				if got := a.tabAtX(pos); got != -1 {
					t.Fatalf("active=%d separator x=%d -> tab=%d, want -1", active, pos, got)
				}
				pos += 2
			}
		}

		// Leading space and anything past the last tab miss
		if got := a.tabAtX(0); got != -1 {
			t.Fatalf("active=%d x=0 -> tab=%d, want -1", active, got)
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x=%d -> tab=%d, want -1", active, pos+5, got)
		}
	}
}

func TestTabKeysAreUnique(t *testing.T) {
	seen := map[rune]int{}
	for i, tab := range components.Tabs {
		r := rune(tab.Name[tab.KeyPos])
		if prev, ok := seen[r]; ok {
			t.Fatalf("tabs %d and %d share the shortcut %q", prev, i, r)
		}
		seen[r] = i

		if got := components.TabIdxByKey(r); got != i {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", r, got, i)
		}
	}
}
