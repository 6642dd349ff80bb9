package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/sessio/pkg/todo"
)

// Persistence is the on-disk contract for todos and app state.
type Persistence interface {
	Todos(ctx context.Context) []*todo.Item
	StoreTodo(item *todo.Item) error
	DeleteTodo(id int64) error
	State() (AppState, error)
	SaveState(state AppState) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// AppState is the singleton snapshot restored on startup: the completion log
// feeding today's session count, and the last playback posture.
type AppState struct {
	CompletionLog []time.Time   `json:"completion_log,omitempty"`
	SelectedTodo  int64         `json:"selected_todo,omitempty"`
	Music         PlaybackState `json:"music"`
}

// PlaybackState remembers the music panel between runs.
type PlaybackState struct {
	Mode      string  `json:"mode"`
	Repeat    bool    `json:"repeat"`
	Volume    float64 `json:"volume"`
	TrackPath string  `json:"track_path,omitempty"`
}

// Load creates a Persistence rooted at basePath. A leading ~ is expanded.
func Load(basePath string) (Persistence, error) {
	expanded, err := homedir.Expand(basePath)
	if err != nil {
		return nil, fmt.Errorf("store: expand %s: %w", basePath, err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          expanded,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: expanded}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const (
	todosBucket   = "todos"
	stateFileName = ".state.json"
)

func (p *persistence) read(key string) (*todo.Item, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	item := &todo.Item{}
	if err := json.Unmarshal(val, item); err != nil {
		return nil, err
	}
	if item.ID == 0 {
		pk := keyToPathTransform(key)
		id, err := strconv.ParseInt(pk.FileName, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("store: bad todo key %s: %w", key, err)
		}
		item.ID = id
	}
	return item, nil
}

func (p *persistence) Todos(ctx context.Context) []*todo.Item {
	all := make([]*todo.Item, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] != todosBucket {
			continue
		}
		item, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, item)
	}
	sortItems(all)
	return all
}

func (p *persistence) StoreTodo(item *todo.Item) error {
	if item == nil || item.ID == 0 {
		return errors.New("store: todo id required")
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return p.d.Write(todoKey(item.ID), data)
}

func (p *persistence) DeleteTodo(id int64) error {
	if id == 0 {
		return errors.New("store: todo id required")
	}
	return p.d.Erase(todoKey(id))
}

func (p *persistence) statePath() string {
	return filepath.Join(p.basePath, stateFileName)
}

func (p *persistence) State() (AppState, error) {
	state := AppState{}
	data, err := os.ReadFile(p.statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, err
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, fmt.Errorf("store: parse state: %w", err)
	}
	return state, nil
}

func (p *persistence) SaveState(state AppState) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	path := p.statePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func sortItems(items []*todo.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		left := items[i]
		right := items[j]
		if left == nil || right == nil {
			return left != nil
		}
		return left.ID < right.ID
	})
}

// todoKey makes `todos-<id>`.
func todoKey(id int64) string {
	return fmt.Sprintf("%s-%d", todosBucket, id)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
