// Package autofill implements the autocomplete controller behind the
// Pokemon name entry. It has no GUI dependency: a toolkit widget forwards
// key events to a Controller and renders whatever the Controller pushes
// to its View.
package autofill

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/unicode/norm"
)

// CandidateSet is the immutable dictionary of completions.
// Names are lowercased, NFC normalized and deduplicated in construction order.
type CandidateSet struct {
	names []string
	trie  *patricia.Trie
}

// NewCandidateSet builds a set from names. Blank names are dropped.
// When alphabetical is true the set is sorted once here.
func NewCandidateSet(names []string, alphabetical bool) *CandidateSet {
	seen := make(map[string]struct{}, len(names))
	cs := &CandidateSet{
		names: make([]string, 0, len(names)),
		trie:  patricia.NewTrie(),
	}

	for _, name := range names {
		key := Normalize(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cs.names = append(cs.names, key)
	}

	if alphabetical {
		sort.Strings(cs.names)
	}

	// Trie items hold the position in names so prefix hits can be put back in order
	for i, key := range cs.names {
		cs.trie.Insert(patricia.Prefix(key), i)
	}
	return cs
}

// Normalize returns the lookup key for s.
func Normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Len returns the number of candidates.
func (cs *CandidateSet) Len() int {
	return len(cs.names)
}

// Names returns a copy of the candidates in set order.
func (cs *CandidateSet) Names() []string {
	out := make([]string, len(cs.names))
	copy(out, cs.names)
	return out
}

// Contains reports whether text equals a candidate, ignoring case.
func (cs *CandidateSet) Contains(text string) bool {
	key := Normalize(text)
	if key == "" {
		return false
	}
	return cs.trie.Get(patricia.Prefix(key)) != nil
}

// Matches returns every candidate prefixed by the lowercased prefix, in set order.
func (cs *CandidateSet) Matches(prefix string) []string {
	key := Normalize(prefix)

	var idx []int
	_ = cs.trie.VisitSubtree(patricia.Prefix(key), func(_ patricia.Prefix, item patricia.Item) error {
		if i, ok := item.(int); ok {
			idx = append(idx, i)
		}
		return nil
	})
	sort.Ints(idx)

	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, cs.names[i])
	}
	return out
}

// Guess classifies text against the set.
func (cs *CandidateSet) Guess(text string) Guess {
	key := Normalize(text)
	switch {
	case key == "":
		return Guess{Kind: GuessEmpty}
	case cs.trie.Get(patricia.Prefix(key)) != nil:
		return Guess{Kind: GuessExact, Exact: key}
	default:
		return Guess{Kind: GuessMatches, Matches: cs.Matches(key)}
	}
}

// Display returns the form used when a candidate is shown or filled:
// the first letter upper-cased, the rest untouched.
func Display(candidate string) string {
	r, size := utf8.DecodeRuneInString(candidate)
	if r == utf8.RuneError {
		return candidate
	}
	return string(unicode.ToUpper(r)) + candidate[size:]
}
