// Package benchmarks measures command latency on large models.
package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/variants"
)

func newEditor(b *testing.B, m *primitives.Model) *core.Editor {
	b.Helper()
	ed, err := core.NewEditor(variants.MustFor(m.Kind), core.WithModel(m))
	if err != nil {
		b.Fatal(err)
	}
	return ed
}

func BenchmarkRenameStateCascade(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			ed := newEditor(b, GenNFA(n))
			labels := [2]string{"s0", "renamed"}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := ed.RenameState(0, labels[(i+1)%2]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEditRegisterCascade(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("registers=%d", n), func(b *testing.B) {
			ed := newEditor(b, GenRA(n))
			indexes := [2]string{"1", "r1"}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := ed.EditRegister(0, indexes[(i+1)%2], primitives.IntPtr(1)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAddTransitionMerge(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			ed := newEditor(b, GenNFA(n))
			t := primitives.Transition{Source: "s0", Symbol: "a", Targets: primitives.TargetsOf("s0")}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := ed.AddTransition(t); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDeleteGuardRejection(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			ed := newEditor(b, GenNFA(n))
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := ed.DeleteState(n - 1); err == nil {
					b.Fatal("referenced state deleted")
				}
			}
		})
	}
}

func BenchmarkValidateTestCases(b *testing.B) {
	ed := newEditor(b, GenNFA(1000))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if issues := ed.ValidateTestCases(); len(issues) != 0 {
			b.Fatal(issues)
		}
	}
}
