package core

import (
	"strings"
	"unicode/utf8"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// The cascade functions rewrite every reference to label from so that it
// reads to.
// They run on the clone owned by a command, so a rename is observed either
// completely or not at all. Sets that hold labels (target sets,
// designations, update keys) collapse duplicates the rename produces.

func cascadeState(m *primitives.Model, from, to string) {
	for i := range m.Transitions {
		t := &m.Transitions[i]
		if t.Source == from {
			t.Source = to
		}
		if t.Guard.Last == from {
			t.Guard.Last = to
		}
		for j := range t.Targets {
			if t.Targets[j].State == from {
				t.Targets[j].State = to
			}
		}
		t.Targets = primitives.UnionTargets(nil, t.Targets)
	}
	m.Initial = replaceLabel(m.Initial, from, to)
	m.Accepting = replaceLabel(m.Accepting, from, to)
	m.GlobalAccepting = replaceLabel(m.GlobalAccepting, from, to)
	for i := range m.Updates {
		if m.Updates[i].State == from {
			m.Updates[i].State = to
		}
	}
	m.Updates = dedupeUpdates(m.Updates)
}

func cascadeSymbol(m *primitives.Model, from, to string) {
	for i := range m.Transitions {
		if m.Transitions[i].Symbol == from {
			m.Transitions[i].Symbol = to
		}
	}
	for i := range m.Updates {
		if m.Updates[i].Symbol == from {
			m.Updates[i].Symbol = to
		}
	}
	m.Updates = dedupeUpdates(m.Updates)

	for i := range m.TestCases {
		tc := &m.TestCases[i]
		if tc.Steps == nil {
			// Words are read character by character, so only a
			// one-character symbol renamed to another one-character
			// symbol can be rewritten in place.
			if utf8.RuneCountInString(from) == 1 && utf8.RuneCountInString(to) == 1 {
				tc.Word = strings.ReplaceAll(tc.Word, from, to)
			}
			continue
		}
		for j := range tc.Steps {
			if tc.Steps[j].Symbol == from {
				tc.Steps[j].Symbol = to
			}
		}
	}
}

func cascadeRegister(m *primitives.Model, from, to string) {
	for i := range m.Transitions {
		if m.Transitions[i].Register == from {
			m.Transitions[i].Register = to
		}
	}
	for i := range m.Updates {
		if m.Updates[i].Register == from {
			m.Updates[i].Register = to
		}
	}
}

func cascadeSet(m *primitives.Model, from, to string) {
	for i := range m.Transitions {
		t := &m.Transitions[i]
		if t.Guard.Set == from {
			t.Guard.Set = to
		}
		for j := range t.Targets {
			if t.Targets[j].Insert == from {
				t.Targets[j].Insert = to
			}
		}
		t.Targets = primitives.UnionTargets(nil, t.Targets)
	}
}

// replaceLabel rewrites from into to within a label set, keeping first-seen order
// and dropping the duplicate if to was already present.
func replaceLabel(labels []string, from, to string) []string {
	if !slices.Contains(labels, from) {
		return labels
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == from {
			l = to
		}
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// dedupeUpdates collapses entries that now share a key. The entry written
// last wins and keeps the position of the first.
func dedupeUpdates(updates []primitives.UpdateEntry) []primitives.UpdateEntry {
	pos := make(map[primitives.UpdateKey]int, len(updates))
	out := make([]primitives.UpdateEntry, 0, len(updates))
	for _, u := range updates {
		if i, ok := pos[u.Key()]; ok {
			out[i] = u
			continue
		}
		pos[u.Key()] = len(out)
		out = append(out, u)
	}
	if updates == nil {
		return nil
	}
	return out
}

// renameAt overwrites the label at pos with to. If to already names a different
// entry, the two collapse into the existing one and the entry at pos is
// removed. It reports whether that collision happened.
func renameAt(labels []string, pos int, to string) ([]string, bool) {
	if i := slices.Index(labels, to); i >= 0 && i != pos {
		return slices.Delete(labels, pos, pos+1), true
	}
	labels[pos] = to
	return labels, false
}
