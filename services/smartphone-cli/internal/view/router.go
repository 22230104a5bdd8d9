// Package view selects which screen is active: list, add, detail or edit.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartphones/services/smartphone-cli/internal/client"
	"smartphones/services/smartphone-cli/internal/store"
)

type State int

const (
	StateList State = iota
	StateAdd
	StateDetail
	StateEdit
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateAdd:
		return "add"
	case StateDetail:
		return "detail"
	case StateEdit:
		return "edit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Event int

const (
	EventCreate Event = iota
	EventSelect
	EventEdit
	EventCancel
	EventSaved
)

func (e Event) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventSelect:
		return "select"
	case EventEdit:
		return "edit"
	case EventCancel:
		return "cancel"
	case EventSaved:
		return "saved"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

var ErrInvalidTransition = errors.New("invalid transition")

var transitions = map[State]map[Event]State{
	StateList: {
		EventCreate: StateAdd,
		EventSelect: StateDetail,
		EventEdit:   StateEdit,
	},
	StateAdd: {
		EventCancel: StateList,
		EventSaved:  StateList,
	},
	StateDetail: {
		EventEdit:   StateEdit,
		EventCancel: StateList,
	},
	StateEdit: {
		EventCancel: StateList,
		EventSaved:  StateList,
	},
}

// Router is driven from a single goroutine, like a UI thread.
type Router struct {
	store    *store.Store
	state    State
	selected client.Smartphone
	editing  client.Smartphone
	filter   string
}

func NewRouter(s *store.Store) *Router {
	return &Router{store: s, state: StateList}
}

func (r *Router) State() State { return r.state }
func (r *Router) Selected() client.Smartphone { return r.selected }
func (r *Router) Editing() client.Smartphone { return r.editing }
func (r *Router) Filter() string { return r.filter }
func (r *Router) SetFilter(q string) { r.filter = q }
func (r *Router) Store() *store.Store { return r.store }

// Visible is the list view after the local filter. It never hits the network.
func (r *Router) Visible() []client.Smartphone {
	return Filter(r.store.Phones(), r.filter)
}

func (r *Router) can(ev Event) error {
	if _, ok := transitions[r.state][ev]; !ok {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, r.state)
	}
	return nil
}

func (r *Router) fire(ev Event) error {
	if err := r.can(ev); err != nil {
		return err
	}
	r.state = transitions[r.state][ev]
	return nil
}

func (r *Router) StartAdd() error {
	return r.fire(EventCreate)
}

// Select fetches the record before moving to detail. On failure the router
// stays on the list and the store carries the error.
func (r *Router) Select(ctx context.Context, id string) error {
	if err := r.can(EventSelect); err != nil {
		return err
	}
	phone, err := r.store.Fetch(ctx, id)
	if err != nil {
		return err
	}
	r.selected = phone
	return r.fire(EventSelect)
}

func (r *Router) StartEdit(phone client.Smartphone) error {
	if err := r.fire(EventEdit); err != nil {
		return err
	}
	r.editing = phone
	return nil
}

func (r *Router) Cancel() error {
	if err := r.fire(EventCancel); err != nil {
		return err
	}
	r.editing = nil
	r.selected = nil
	return nil
}

func (r *Router) SubmitAdd(ctx context.Context, phone client.Smartphone) error {
	if r.state != StateAdd {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, r.state)
	}
	if err := r.store.Add(ctx, phone); err != nil {
		return err
	}
	return r.fire(EventSaved)
}

func (r *Router) SubmitEdit(ctx context.Context, phone client.Smartphone) error {
	if r.state != StateEdit {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, r.state)
	}
	if err := r.store.Save(ctx, phone); err != nil {
		return err
	}
	r.editing = nil
	r.selected = nil
	return r.fire(EventSaved)
}

// Delete runs from the list without changing state.
func (r *Router) Delete(ctx context.Context, id, code string) error {
	if r.state != StateList {
		return fmt.Errorf("%w: delete from %s", ErrInvalidTransition, r.state)
	}
	return r.store.Remove(ctx, id, code)
}

// Filter keeps records whose nom or marque contains q, ignoring case.
func Filter(phones []client.Smartphone, q string) []client.Smartphone {
	q = strings.ToLower(q)
	out := make([]client.Smartphone, 0, len(phones))
	for _, p := range phones {
		if strings.Contains(strings.ToLower(p.Nom()), q) || strings.Contains(strings.ToLower(p.Marque()), q) {
			out = append(out, p)
		}
	}
	return out
}
