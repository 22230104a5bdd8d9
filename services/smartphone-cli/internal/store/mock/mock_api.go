// Package mock provides an in-memory stand-in for the smartphone API.
package mock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"smartphones/services/smartphone-cli/internal/client"
)

// API mimics the server: ids are assigned on create, deletes need Code.
type API struct {
	Code string

	mu      sync.Mutex
	nextID  int
	order   []string
	phones  map[string]client.Smartphone
	failNet map[string]bool
	calls   map[string]int
}

func New(code string) *API {
	return &API{
		Code:    code,
		phones:  map[string]client.Smartphone{},
		failNet: map[string]bool{},
		calls:   map[string]int{},
	}
}

// ErrNetwork is what a failing operation returns.
var ErrNetwork = errors.New("dial tcp: connection refused")

// FailNetwork makes op ("list", "get", "create", "update", "delete") fail with ErrNetwork.
func (a *API) FailNetwork(op string, fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failNet[op] = fail
}

// Calls reports how many times op was invoked.
func (a *API) Calls(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

// Seed inserts phones directly, bypassing call counting.
func (a *API) Seed(phones ...client.Smartphone) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(phones))
	for _, p := range phones {
		ids = append(ids, a.insert(p))
	}
	return ids
}

func (a *API) List(_ context.Context) ([]client.Smartphone, error) {
	if err := a.enter("list"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]client.Smartphone, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, clone(a.phones[id]))
	}
	return out, nil
}

func (a *API) Get(_ context.Context, id string) (client.Smartphone, error) {
	if err := a.enter("get"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.phones[id]
	if !ok {
		return nil, notFound()
	}
	return clone(p), nil
}

func (a *API) Create(_ context.Context, phone client.Smartphone) (client.Smartphone, error) {
	if err := a.enter("create"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.insert(phone)
	return clone(a.phones[id]), nil
}

func (a *API) Update(_ context.Context, id string, phone client.Smartphone) (client.Smartphone, error) {
	if err := a.enter("update"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.phones[id]; !ok {
		return nil, notFound()
	}
	p := clone(phone)
	p["id"] = id
	a.phones[id] = p
	return clone(p), nil
}

func (a *API) Delete(_ context.Context, id, code string) error {
	if err := a.enter("delete"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if code != a.Code {
		return &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid delete code"}
	}
	if _, ok := a.phones[id]; !ok {
		return notFound()
	}
	delete(a.phones, id)
	for i, o := range a.order {
		if o == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

func (a *API) enter(op string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls[op]++
	if a.failNet[op] {
		return fmt.Errorf("client: %s: %w", op, ErrNetwork)
	}
	return nil
}

func (a *API) insert(p client.Smartphone) string {
	a.nextID++
	id := fmt.Sprintf("phone-%d", a.nextID)
	c := clone(p)
	c["id"] = id
	a.phones[id] = c
	a.order = append(a.order, id)
	return id
}

func notFound() error {
	return &client.APIError{StatusCode: http.StatusNotFound, Message: "Smartphone not found"}
}

func clone(p client.Smartphone) client.Smartphone {
	c := make(client.Smartphone, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
