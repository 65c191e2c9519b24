// Package production provides production integrations: persistence, event publishing, visualization.
// Implements the core interfaces on files, channels and Graphviz DOT.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/comalice/automatonx/internal/core"
)

const lockTimeout = 5 * time.Second

// codec is the serialization half of a file persister.
type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	jsonCodec = codec{
		ext:       ".json",
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{
		ext:       ".yaml",
		marshal:   yaml.Marshal,
		unmarshal: yaml.Unmarshal,
	}
)

// fileStore keeps one snapshot file per project in dir. Writes go through a
// temp file and rename under an exclusive flock on <file>.lock.
type fileStore struct {
	dir   string
	codec codec
}

func newFileStore(dir string, c codec) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return fileStore{dir: dir, codec: c}, nil
}

func (s fileStore) path(projectID string) string {
	return filepath.Join(s.dir, projectID+s.codec.ext)
}

func (s fileStore) save(ctx context.Context, snapshot core.ProjectSnapshot) error {
	if snapshot.ProjectID == "" {
		return errors.New("snapshot has no project ID")
	}
	data, err := s.codec.marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", snapshot.ProjectID, err)
	}

	fn := s.path(snapshot.ProjectID)
	lock, err := acquire(ctx, fn)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	if err := atomicWriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s fileStore) load(ctx context.Context, projectID string) (core.ProjectSnapshot, error) {
	fn := s.path(projectID)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.ProjectSnapshot{}, fmt.Errorf("project %q: %w", projectID, os.ErrNotExist)
		}
		return core.ProjectSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.ProjectSnapshot
	if err := s.codec.unmarshal(data, &snapshot); err != nil {
		return core.ProjectSnapshot{}, fmt.Errorf("decode %s: %w", fn, err)
	}
	snapshot.ProjectID = projectID
	if err := snapshot.Model.Validate(); err != nil {
		return core.ProjectSnapshot{}, fmt.Errorf("model validation after load: %w", err)
	}
	return snapshot, nil
}

func (s fileStore) list() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, s.codec.ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, s.codec.ext))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s fileStore) remove(ctx context.Context, projectID string) error {
	fn := s.path(projectID)
	lock, err := acquire(ctx, fn)
	if err != nil {
		return err
	}
	defer func() {
		lock.Unlock()
		_ = os.Remove(fn + ".lock")
	}()
	if err := os.Remove(fn); err != nil {
		return fmt.Errorf("remove %s: %w", fn, err)
	}
	return nil
}

func acquire(ctx context.Context, fn string) (*flock.Flock, error) {
	lock := flock.New(fn + ".lock")
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock on %s: %w", fn, err)
	}
	if !locked {
		return nil, fmt.Errorf("timeout waiting for lock on %s", fn)
	}
	return lock, nil
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	store fileStore
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	s, err := newFileStore(dir, jsonCodec)
	if err != nil {
		return nil, err
	}
	return &JSONPersister{store: s}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.ProjectSnapshot) error {
	return p.store.save(ctx, snapshot)
}

func (p *JSONPersister) Load(ctx context.Context, projectID string) (core.ProjectSnapshot, error) {
	return p.store.load(ctx, projectID)
}

// List returns the stored project IDs in lexical order.
func (p *JSONPersister) List(context.Context) ([]string, error) { return p.store.list() }

// Delete removes a stored project.
func (p *JSONPersister) Delete(ctx context.Context, projectID string) error {
	return p.store.remove(ctx, projectID)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	store fileStore
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	s, err := newFileStore(dir, yamlCodec)
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{store: s}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.ProjectSnapshot) error {
	return p.store.save(ctx, snapshot)
}

func (p *YAMLPersister) Load(ctx context.Context, projectID string) (core.ProjectSnapshot, error) {
	return p.store.load(ctx, projectID)
}

// List returns the stored project IDs in lexical order.
func (p *YAMLPersister) List(context.Context) ([]string, error) { return p.store.list() }

// Delete removes a stored project.
func (p *YAMLPersister) Delete(ctx context.Context, projectID string) error {
	return p.store.remove(ctx, projectID)
}

// NewPersister picks the persister for format ("json" or "yaml").
func NewPersister(format, dir string) (Store, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return NewYAMLPersister(dir)
	case "json":
		return NewJSONPersister(dir)
	}
	return nil, fmt.Errorf("unknown project format %q (want json or yaml)", format)
}

// Store is a core.Persister that can also enumerate and remove projects.
type Store interface {
	core.Persister
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, projectID string) error
}
