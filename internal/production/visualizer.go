package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
)

// DefaultVisualizer renders models as Graphviz DOT.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the automaton. Accepting states
// are double circles, initial states get an arrow from an invisible start
// node and CMA global-accepting states are filled.
func (v *DefaultVisualizer) ExportDOT(m *primitives.Model) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", m.Kind)
	buf.WriteString(`  rankdir=LR;
  node [shape=circle, fontsize=10];
  edge [fontsize=9];
`)

	for _, s := range m.States {
		attrs := []string{fmt.Sprintf("label=%q", s)}
		if slices.Contains(m.Accepting, s) {
			attrs = append(attrs, "shape=doublecircle")
		}
		if slices.Contains(m.GlobalAccepting, s) {
			attrs = append(attrs, "style=filled", "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s, strings.Join(attrs, " "))
	}

	for i, s := range m.Initial {
		start := fmt.Sprintf("__start%d", i)
		fmt.Fprintf(&buf, "  %q [shape=point style=invis];\n", start)
		fmt.Fprintf(&buf, "  %q -> %q;\n", start, s)
	}

	for _, e := range collectEdges(m) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the service configuration of m.
func (v *DefaultVisualizer) ExportJSON(m *primitives.Model) ([]byte, error) {
	cfg, err := export.Config(m)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// Edge represents a transition edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// collectEdges emits one edge per (transition, target) pair. Parallel edges
// between the same pair of states are merged with a newline-separated label.
func collectEdges(m *primitives.Model) []Edge {
	var edges []Edge
	index := make(map[[2]string]int)
	for _, t := range m.Transitions {
		for _, tg := range t.Targets {
			label := edgeLabel(m.Kind, t, tg)
			key := [2]string{t.Source, tg.State}
			if i, ok := index[key]; ok {
				edges[i].Label += "\n" + label
				continue
			}
			index[key] = len(edges)
			edges = append(edges, Edge{From: t.Source, To: tg.State, Label: label})
		}
	}
	return edges
}

func edgeLabel(kind primitives.Kind, t primitives.Transition, tg primitives.Target) string {
	switch kind {
	case primitives.RA:
		return t.Symbol + ", " + t.Register
	case primitives.SAFA:
		check := "!" + t.Guard.Set + "()"
		if t.Guard.Member {
			check = t.Guard.Set + "()"
		}
		label := t.Symbol + ", " + check
		if tg.Insert != "" && tg.Insert != primitives.None {
			label += " / +" + tg.Insert
		}
		return label
	case primitives.CCA:
		return fmt.Sprintf("%s, c%s%d / %s", t.Symbol, t.Guard.Op, t.Guard.Threshold, t.Update)
	case primitives.CMA:
		return t.Symbol + ", " + t.Guard.Last
	}
	return t.Symbol
}
