// Package store holds the client's copy of the smartphone collection. The copy
// is refetched wholesale after every mutation and never patched locally.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"smartphones/services/smartphone-cli/internal/client"
)

var ErrMissingID = errors.New("smartphone has no id")

// API is the subset of client.Client the store needs.
type API interface {
	List(ctx context.Context) ([]client.Smartphone, error)
	Get(ctx context.Context, id string) (client.Smartphone, error)
	Create(ctx context.Context, phone client.Smartphone) (client.Smartphone, error)
	Update(ctx context.Context, id string, phone client.Smartphone) (client.Smartphone, error)
	Delete(ctx context.Context, id, code string) error
}

type Store struct {
	api API

	mu       sync.Mutex
	phones   []client.Smartphone
	inflight int
	err      error
}

func New(api API) *Store {
	return &Store{api: api, phones: []client.Smartphone{}}
}

// Phones returns a copy of the collection.
func (s *Store) Phones() []client.Smartphone {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Smartphone, 0, len(s.phones))
	for _, p := range s.phones {
		c := make(client.Smartphone, len(p))
		for k, v := range p {
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}

// Err is the error currently shown to the user, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *Store) ClearError() {
	s.setErr(nil)
}

// Refresh reloads the whole collection. A failure empties it so stale data is
// never shown.
func (s *Store) Refresh(ctx context.Context) error {
	s.begin()
	defer s.end()
	s.setErr(nil)

	slog.Debug("loading smartphones")
	phones, err := s.api.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		slog.Warn("load failed", "error", err)
		s.phones = []client.Smartphone{}
		s.err = fmt.Errorf("could not load smartphones: %w", err)
		return s.err
	}
	s.phones = phones
	return nil
}

// Retry clears the error and reissues the list request.
func (s *Store) Retry(ctx context.Context) error {
	s.ClearError()
	return s.Refresh(ctx)
}

// Add creates the record then reloads. The returned error only covers the
// create; a failed reload is reported through Err.
func (s *Store) Add(ctx context.Context, phone client.Smartphone) error {
	if err := s.mutate("add", func() error {
		_, err := s.api.Create(ctx, phone)
		return err
	}); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *Store) Save(ctx context.Context, phone client.Smartphone) error {
	id := phone.ID()
	if id == "" {
		return ErrMissingID
	}
	if err := s.mutate("edit", func() error {
		_, err := s.api.Update(ctx, id, phone)
		return err
	}); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// Remove deletes with the given code. A rejection from the server is returned
// as-is and leaves the collection and the error banner untouched.
func (s *Store) Remove(ctx context.Context, id, code string) error {
	s.begin()
	err := s.api.Delete(ctx, id, code)
	s.end()

	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			s.setErr(fmt.Errorf("could not delete smartphone: %w", err))
		}
		return err
	}
	s.Refresh(ctx)
	return nil
}

// Fetch loads one record on demand.
func (s *Store) Fetch(ctx context.Context, id string) (client.Smartphone, error) {
	phone, err := s.api.Get(ctx, id)
	if err != nil {
		err = fmt.Errorf("could not load smartphone %s: %w", id, err)
		s.setErr(err)
		return nil, err
	}
	return phone, nil
}

func (s *Store) mutate(op string, fn func() error) error {
	s.begin()
	defer s.end()
	s.setErr(nil)

	if err := fn(); err != nil {
		err = fmt.Errorf("could not %s smartphone: %w", op, err)
		s.setErr(err)
		return err
	}
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
