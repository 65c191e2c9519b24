package primitives

import (
	"fmt"
	"strings"
)

// Kind tags the automaton family a model belongs to. The string value is the
// automata_type tag understood by the evaluation service.
type Kind string

const (
	NFA  Kind = "NFA"
	RA   Kind = "RA"
	SAFA Kind = "SAFA"
	CCA  Kind = "CCA"
	CMA  Kind = "CMA"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{NFA, RA, SAFA, CCA, CMA}

// Reserved labels.
const (
	// Epsilon is the NFA empty-move symbol. It may label a transition but is
	// never part of the alphabet.
	Epsilon = "ε"
	// Unset marks an RA register or test-case value that carries no data.
	Unset = "⊥"
	// None is the "no insertion" (SAFA) and "no last occurrence" (CMA) marker.
	None = "-"
)

// ParseKind resolves a kind tag case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown automaton kind %q (want one of NFA, RA, SAFA, CCA, CMA)", ErrUnsupported, s)
}

// Title returns the long human name of the kind.
func (k Kind) Title() string {
	switch k {
	case NFA:
		return "Non-deterministic Finite Automaton"
	case RA:
		return "Register Automaton"
	case SAFA:
		return "Set-Augmented Finite Automaton"
	case CCA:
		return "Class Counting Automaton"
	case CMA:
		return "Class Memory Automaton"
	default:
		return string(k)
	}
}

// Stepped reports whether test cases of this kind are (symbol,value) sequences
// rather than plain words.
func (k Kind) Stepped() bool {
	return k != NFA
}

// MultiInitial reports whether the kind admits more than one initial state.
func (k Kind) MultiInitial() bool {
	return k == NFA || k == CCA
}
