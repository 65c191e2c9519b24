// Tests for the file persisters and their integration with Editor.
package production

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/variants"
)

func raModel() primitives.Model {
	return primitives.Model{
		Kind:      primitives.RA,
		States:    []string{"q0", "q1"},
		Alphabet:  []string{"a"},
		Registers: []primitives.Register{{Index: "1", Initial: primitives.IntPtr(3)}, {Index: "2"}},
		Transitions: []primitives.Transition{
			{Source: "q0", Symbol: "a", Register: "1", Targets: primitives.TargetsOf("q1")},
		},
		Initial:   []string{"q0"},
		Accepting: []string{"q1"},
		Updates:   []primitives.UpdateEntry{{State: "q0", Symbol: "a", Register: "2"}},
		TestCases: []primitives.TestCase{{Steps: []primitives.Step{{Symbol: "a", Value: primitives.IntPtr(3)}, {Symbol: "a"}}}},
	}
}

func persisters(t *testing.T) map[string]Store {
	t.Helper()
	j, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONPersister failed: %v", err)
	}
	y, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewYAMLPersister failed: %v", err)
	}
	return map[string]Store{"json": j, "yaml": y}
}

func TestPersister_RoundTrip(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			snapshot := core.ProjectSnapshot{
				ProjectID: "ra-project",
				Version:   "abc",
				Model:     raModel(),
				Timestamp: time.Now().UTC().Truncate(time.Second),
			}
			if err := p.Save(context.Background(), snapshot); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := p.Load(context.Background(), "ra-project")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(loaded.Model, snapshot.Model) {
				t.Errorf("model mismatch:\n got %+v\nwant %+v", loaded.Model, snapshot.Model)
			}
			if !loaded.Timestamp.Equal(snapshot.Timestamp) {
				t.Errorf("timestamp mismatch: got %v, want %v", loaded.Timestamp, snapshot.Timestamp)
			}
		})
	}
}

func TestPersister_LoadNonExistent(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Load(context.Background(), "nonexistent")
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Expected os.ErrNotExist wrapped error, got %v", err)
			}
		})
	}
}

func TestPersister_LoadRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	p, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	bad := "projectID: x\nmodel:\n  kind: NFA\n  states: [q0, q0]\n"
	if err := os.WriteFile(filepath.Join(dir, "x.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(context.Background(), "x"); !errors.Is(err, primitives.ErrDuplicateEntity) {
		t.Errorf("expected duplicate entity error, got %v", err)
	}
}

func TestPersister_LoadRejectsSecondInitialState(t *testing.T) {
	dir := t.TempDir()
	p, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	bad := "projectID: x\nmodel:\n  kind: RA\n  states: [q0, q1]\n  initial: [q0, q1]\n"
	if err := os.WriteFile(filepath.Join(dir, "x.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(context.Background(), "x"); !errors.Is(err, primitives.ErrInvalidValue) {
		t.Errorf("expected invalid value error, got %v", err)
	}
}

func TestPersister_ListAndDelete(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"b", "a"} {
				if err := p.Save(ctx, core.ProjectSnapshot{ProjectID: id, Model: *primitives.NewModel(primitives.NFA)}); err != nil {
					t.Fatal(err)
				}
			}
			ids, err := p.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(ids, []string{"a", "b"}) {
				t.Errorf("List = %v, want [a b]", ids)
			}

			if err := p.Delete(ctx, "a"); err != nil {
				t.Fatal(err)
			}
			ids, _ = p.List(ctx)
			if !reflect.DeepEqual(ids, []string{"b"}) {
				t.Errorf("List after delete = %v, want [b]", ids)
			}
		})
	}
}

func TestPersister_SaveRequiresID(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Save(context.Background(), core.ProjectSnapshot{}); err == nil {
		t.Error("expected error for snapshot without project ID")
	}
}

func TestPersister_ConcurrentSaves(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Save(context.Background(), core.ProjectSnapshot{ProjectID: "shared", Model: raModel()}); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if _, err := p.Load(context.Background(), "shared"); err != nil {
		t.Errorf("Load after concurrent saves failed: %v", err)
	}
}

func TestNewPersister(t *testing.T) {
	if _, err := NewPersister("json", t.TempDir()); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := NewPersister("", t.TempDir()); err != nil {
		t.Errorf("default: %v", err)
	}
	if _, err := NewPersister("xml", t.TempDir()); err == nil {
		t.Error("expected error for xml")
	}
}

func TestPersister_Integration_RestoreEditor(t *testing.T) {
	p, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ed, err := core.NewEditor(variants.MustFor(primitives.NFA), core.WithID("restore-test"), core.WithPersister(p))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"q0", "q1"} {
		if err := ed.AddState(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := ed.AddSymbol("a"); err != nil {
		t.Fatal(err)
	}
	if err := ed.AddTransition(primitives.Transition{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q1")}); err != nil {
		t.Fatal(err)
	}

	loaded, err := p.Load(context.Background(), "restore-test")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Version != ed.Version() {
		t.Errorf("persisted version %q, editor version %q", loaded.Version, ed.Version())
	}

	ed2, err := core.NewEditor(variants.MustFor(primitives.NFA), core.WithModel(&loaded.Model))
	if err != nil {
		t.Fatal(err)
	}
	if ed2.Version() != ed.Version() {
		t.Errorf("restored model mismatch: got %+v, want %+v", ed2.Snapshot(), ed.Snapshot())
	}
}
