package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/evalclient"
	"github.com/comalice/automatonx/internal/production"
	"github.com/comalice/automatonx/internal/variants"
)

const sessionLockTimeout = 5 * time.Second

// session is one locked load -> mutate -> save cycle over a project file.
type session struct {
	store   production.Store
	editor  *core.Editor
	version string
	lock    *flock.Flock
}

func openStore() (production.Store, error) {
	return production.NewPersister(cfg.Project.Format, cfg.Project.Dir)
}

func evaluator() core.Evaluator {
	c := evalclient.New(cfg.Service.BaseURL)
	c.EvaluatePath = cfg.Service.EvaluatePath
	c.EmptinessPath = cfg.Service.EmptinessPath
	c.Timeout = cfg.Service.Timeout.Duration
	return evalclient.NewLoggingClient(c, slog.Default())
}

// lockProject takes the session lock of a project. The lock file sits next
// to the project file and is distinct from the persister's write lock.
func lockProject(ctx context.Context, name string) (*flock.Flock, error) {
	if err := os.MkdirAll(cfg.Project.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}
	lock := flock.New(filepath.Join(cfg.Project.Dir, "."+name+".session.lock"))
	ctx, cancel := context.WithTimeout(ctx, sessionLockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring project lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("timeout waiting for project %s lock", name)
	}
	return lock, nil
}

func openSession(ctx context.Context) (*session, error) {
	if projectName == "" {
		return nil, errors.New("no project selected (use --project or $" + envProject + ")")
	}
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	lock, err := lockProject(ctx, projectName)
	if err != nil {
		return nil, err
	}

	snap, err := store.Load(ctx, projectName)
	if err != nil {
		lock.Unlock()
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("project %s does not exist (create it with \"automatonx new %s --kind ...\")", projectName, projectName)
		}
		return nil, err
	}
	v, err := variants.For(snap.Model.Kind)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	ed, err := core.NewEditor(v,
		core.WithID(projectName),
		core.WithModel(&snap.Model),
		core.WithLogger(slog.Default().With(slog.String("component", "editor"), slog.String("project", projectName))),
		core.WithPublisher(production.NewLogPublisher(slog.Default())),
		core.WithEvaluator(evaluator()),
		core.WithVisualizer(&production.DefaultVisualizer{}),
	)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	return &session{store: store, editor: ed, version: ed.Version(), lock: lock}, nil
}

// close saves the project if the model changed and releases the lock.
func (s *session) close(ctx context.Context) error {
	defer s.lock.Unlock()
	if s.editor.Version() == s.version {
		return nil
	}
	if err := s.store.Save(ctx, s.editor.Project()); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// withEditor runs fn inside a session and saves afterwards. fn's error wins
// over a save error; a failed command never changes the model, so nothing is
// saved in that case.
func withEditor(ctx context.Context, fn func(ed *core.Editor) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	runErr := fn(s.editor)
	closeErr := s.close(ctx)
	if runErr != nil {
		return runErr
	}
	return closeErr
}
