package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv"
)

// ListKey is the store key holding the whole list as one JSON array.
const ListKey = "todos"

var ErrNotFound = errors.New("todo not found")
var ErrMissingText = errors.New("missing text")

type Service struct {
	store kv.Store
	newID func() string

	// mu serializes read-modify-write cycles issued by this process.
	// Writers in other processes still race: last write wins.
	mu sync.Mutex
}

type Option func(*Service)

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(store kv.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]Todo, error) {
	return s.load(ctx)
}

func (s *Service) Create(ctx context.Context, text string) (Todo, error) {
	if text == "" {
		return Todo{}, ErrMissingText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return Todo{}, err
	}

	t := Todo{ID: s.newID(), Text: text}
	items = append(items, t)
	if err := s.save(ctx, items); err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return Todo{}, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Todo{}, ErrNotFound
	}

	if p.Text != nil {
		items[idx].SetText(*p.Text)
	}
	if p.Completed != nil {
		items[idx].SetCompleted(*p.Completed)
	}
	if err := s.save(ctx, items); err != nil {
		return Todo{}, err
	}
	return items[idx], nil
}

// Delete removes the todo with the given id. A missing id is not an error;
// the list is written back either way.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.removeWhere(ctx, func(t Todo) bool { return t.ID == id })
}

// DeleteFinished drops every completed todo, keeping the rest in order.
func (s *Service) DeleteFinished(ctx context.Context) error {
	return s.removeWhere(ctx, func(t Todo) bool { return t.Completed })
}

func (s *Service) removeWhere(ctx context.Context, drop func(Todo) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, t := range items {
		if !drop(t) {
			kept = append(kept, t)
		}
	}
	return s.save(ctx, kept)
}

// load reads the list. An absent key or a value that is not a JSON array
// reads as an empty list. Elements are kept whatever their shape; one that
// doesn't look like a todo just never matches an id or counts as finished.
func (s *Service) load(ctx context.Context) ([]Todo, error) {
	raw, err := s.store.Get(ctx, ListKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Todo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}

	if !json.Valid(raw) {
		return nil, errors.New("load todos: stored value is not valid json")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []Todo{}, nil
	}

	items := []Todo{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, items []Todo) error {
	if items == nil {
		items = []Todo{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err := s.store.Put(ctx, ListKey, b); err != nil {
		return fmt.Errorf("save todos: %w", err)
	}
	return nil
}
