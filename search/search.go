// Package search narrows a list of keybindings with fzf-style fuzzy
// matching, for use without an interactive finder.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"go.jacobcolvin.com/fzf-keys/keybind"
)

// lines adapts rendered bindings to [fuzzy.Source].
type lines []string

func (l lines) String(i int) string { return l[i] }

func (l lines) Len() int { return len(l) }

// Filter returns the bindings whose rendered line fuzzy-matches every
// whitespace-separated term of query, in their original order. An empty or
// blank query returns binds unchanged.
func Filter(binds []keybind.Keybind, query string) []keybind.Keybind {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return binds
	}

	rendered := make(lines, len(binds))
	for i, b := range binds {
		rendered[i] = keybind.Render(b)
	}

	hits := make([]int, len(binds))

	for _, term := range terms {
		for _, m := range fuzzy.FindFromNoSort(term, rendered) {
			hits[m.Index]++
		}
	}

	var out []keybind.Keybind

	for i, b := range binds {
		if hits[i] == len(terms) {
			out = append(out, b)
		}
	}

	return out
}
