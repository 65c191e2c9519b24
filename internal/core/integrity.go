package core

import (
	"fmt"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// Usage locates one reference to an entity.
type Usage struct {
	Site       string // "initial states", "transition target", ...
	Transition int    // 1-based transition row, 0 when not a transition
}

func (u Usage) String() string {
	if u.Transition > 0 {
		return fmt.Sprintf("transition %d %s", u.Transition, u.Site)
	}
	return u.Site
}

// FindUsage scans the whole model for a reference to label and returns the
// first one found. It never consults a cache, so it sees references added by
// any earlier command.
func FindUsage(m *primitives.Model, entity primitives.EntityType, label string) (Usage, bool) {
	switch entity {
	case primitives.EntityState:
		return stateUsage(m, label)
	case primitives.EntitySymbol:
		return symbolUsage(m, label)
	case primitives.EntityRegister:
		return registerUsage(m, label)
	case primitives.EntitySet:
		return setUsage(m, label)
	}
	return Usage{}, false
}

func stateUsage(m *primitives.Model, label string) (Usage, bool) {
	accepting := "accepting states"
	if m.Kind == primitives.CMA {
		accepting = "local accepting states"
	}
	for _, d := range []struct {
		site   string
		states []string
	}{
		{"initial states", m.Initial},
		{accepting, m.Accepting},
		{"global accepting states", m.GlobalAccepting},
	} {
		if slices.Contains(d.states, label) {
			return Usage{Site: d.site}, true
		}
	}
	for i, t := range m.Transitions {
		switch {
		case t.Source == label:
			return Usage{Site: "source", Transition: i + 1}, true
		case t.Guard.Last == label:
			return Usage{Site: "last-occurrence guard", Transition: i + 1}, true
		case slices.Contains(t.TargetStates(), label):
			return Usage{Site: "target", Transition: i + 1}, true
		}
	}
	for _, u := range m.Updates {
		if u.State == label {
			return Usage{Site: updateSite(u)}, true
		}
	}
	return Usage{}, false
}

func symbolUsage(m *primitives.Model, label string) (Usage, bool) {
	for i, t := range m.Transitions {
		if t.Symbol == label {
			return Usage{Site: "input symbol", Transition: i + 1}, true
		}
	}
	for _, u := range m.Updates {
		if u.Symbol == label {
			return Usage{Site: updateSite(u)}, true
		}
	}
	return Usage{}, false
}

func registerUsage(m *primitives.Model, index string) (Usage, bool) {
	for i, t := range m.Transitions {
		if t.Register == index {
			return Usage{Site: "register", Transition: i + 1}, true
		}
	}
	for _, u := range m.Updates {
		if u.Register == index {
			return Usage{Site: updateSite(u)}, true
		}
	}
	return Usage{}, false
}

func setUsage(m *primitives.Model, name string) (Usage, bool) {
	for i, t := range m.Transitions {
		if t.Guard.Set == name {
			return Usage{Site: "guard", Transition: i + 1}, true
		}
		for _, tg := range t.Targets {
			if tg.Insert == name {
				return Usage{Site: "target insertion", Transition: i + 1}, true
			}
		}
	}
	return Usage{}, false
}

func updateSite(u primitives.UpdateEntry) string {
	return fmt.Sprintf("update function entry (%s, %s)", u.State, u.Symbol)
}

// guardDelete returns a ReferencedEntityError if label is still in use.
func guardDelete(m *primitives.Model, entity primitives.EntityType, label string) error {
	if u, ok := FindUsage(m, entity, label); ok {
		return &primitives.ReferencedEntityError{Entity: entity, Label: label, Usage: u.String()}
	}
	return nil
}
