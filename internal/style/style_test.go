package style

import (
	"strings"
	"testing"
)

func TestShouldUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ShouldUseColor() {
		t.Error("NO_COLOR must disable color")
	}
}

func TestVerdict(t *testing.T) {
	if !strings.Contains(Verdict(true), "accepted") {
		t.Errorf("Verdict(true) = %q", Verdict(true))
	}
	if !strings.Contains(Verdict(false), "rejected") {
		t.Errorf("Verdict(false) = %q", Verdict(false))
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"#", "input"}, [][]string{{"1", "ab"}, {"2", "ba"}})
	for _, want := range []string{"input", "ab", "ba"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
