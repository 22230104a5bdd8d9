package view

import (
	"context"
	"testing"

	"smartphones/services/smartphone-cli/internal/client"
	"smartphones/services/smartphone-cli/internal/store"
	"smartphones/services/smartphone-cli/internal/store/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*Router, *mock.API) {
	t.Helper()
	api := mock.New("1234")
	api.Seed(
		client.Smartphone{"nom": "iPhone 12", "marque": "Apple"},
		client.Smartphone{"nom": "Galaxy S21", "marque": "Samsung"},
	)
	s := store.New(api)
	require.NoError(t, s.Refresh(context.Background()))
	return NewRouter(s), api
}

func TestFilter(t *testing.T) {
	phones := []client.Smartphone{
		{"nom": "iPhone 12", "marque": "Apple"},
		{"nom": "Galaxy S21", "marque": "Samsung"},
	}

	got := Filter(phones, "sam")
	require.Len(t, got, 1)
	assert.Equal(t, "Galaxy S21", got[0].Nom())

	assert.Len(t, Filter(phones, ""), 2)
	assert.Len(t, Filter(phones, "IPHONE"), 1)
	assert.Empty(t, Filter(phones, "nokia"))
	assert.Len(t, Filter([]client.Smartphone{{"prix": 10.0}}, ""), 1)
}

func TestVisible_DoesNotHitNetwork(t *testing.T) {
	r, api := newRouter(t)
	calls := api.Calls("list")

	r.SetFilter("apple")
	require.Len(t, r.Visible(), 1)
	r.SetFilter("")
	assert.Len(t, r.Visible(), 2)
	assert.Equal(t, calls, api.Calls("list"))
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		to   State
		ok   bool
	}{
		{StateList, EventCreate, StateAdd, true},
		{StateList, EventSelect, StateDetail, true},
		{StateList, EventEdit, StateEdit, true},
		{StateList, EventCancel, StateList, false},
		{StateList, EventSaved, StateList, false},
		{StateAdd, EventCancel, StateList, true},
		{StateAdd, EventSaved, StateList, true},
		{StateAdd, EventEdit, StateAdd, false},
		{StateDetail, EventEdit, StateEdit, true},
		{StateDetail, EventCancel, StateList, true},
		{StateDetail, EventCreate, StateDetail, false},
		{StateEdit, EventCancel, StateList, true},
		{StateEdit, EventSaved, StateList, true},
		{StateEdit, EventSelect, StateEdit, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_"+tt.ev.String(), func(t *testing.T) {
			r := &Router{state: tt.from}
			err := r.fire(tt.ev)
			if tt.ok {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
			assert.Equal(t, tt.to, r.State())
		})
	}
}

func TestSelect_FetchesThenShowsDetail(t *testing.T) {
	r, api := newRouter(t)

	require.NoError(t, r.Select(context.Background(), "phone-2"))
	assert.Equal(t, StateDetail, r.State())
	assert.Equal(t, "Galaxy S21", r.Selected().Nom())
	assert.Equal(t, 1, api.Calls("get"))

	require.NoError(t, r.StartEdit(r.Selected()))
	assert.Equal(t, StateEdit, r.State())
	assert.Equal(t, "phone-2", r.Editing().ID())
}

func TestSelect_FailureStaysOnList(t *testing.T) {
	r, api := newRouter(t)
	api.FailNetwork("get", true)

	err := r.Select(context.Background(), "phone-1")
	require.Error(t, err)
	assert.Equal(t, StateList, r.State())
	assert.Error(t, r.Store().Err())
	assert.Nil(t, r.Selected())
}

func TestAddFlow(t *testing.T) {
	ctx := context.Background()
	r, api := newRouter(t)

	require.NoError(t, r.StartAdd())
	assert.Equal(t, StateAdd, r.State())

	api.FailNetwork("create", true)
	require.Error(t, r.SubmitAdd(ctx, client.Smartphone{"nom": "Pixel 8"}))
	assert.Equal(t, StateAdd, r.State())

	api.FailNetwork("create", false)
	require.NoError(t, r.SubmitAdd(ctx, client.Smartphone{"nom": "Pixel 8", "marque": "Google"}))
	assert.Equal(t, StateList, r.State())
	assert.Len(t, r.Visible(), 3)
}

func TestEditFlow(t *testing.T) {
	ctx := context.Background()
	r, _ := newRouter(t)

	phone := r.Visible()[0]
	require.NoError(t, r.StartEdit(phone))

	phone["nom"] = "iPhone 12 mini"
	require.NoError(t, r.SubmitEdit(ctx, phone))
	assert.Equal(t, StateList, r.State())
	assert.Nil(t, r.Editing())
	assert.Equal(t, "iPhone 12 mini", r.Visible()[0].Nom())
}

func TestCancel_ReturnsToList(t *testing.T) {
	r, _ := newRouter(t)

	require.NoError(t, r.StartAdd())
	require.NoError(t, r.Cancel())
	assert.Equal(t, StateList, r.State())

	assert.ErrorIs(t, r.Cancel(), ErrInvalidTransition)
}

func TestSubmit_WrongState(t *testing.T) {
	ctx := context.Background()
	r, _ := newRouter(t)

	assert.ErrorIs(t, r.SubmitAdd(ctx, client.Smartphone{}), ErrInvalidTransition)
	assert.ErrorIs(t, r.SubmitEdit(ctx, client.Smartphone{"id": "phone-1"}), ErrInvalidTransition)
}

func TestDelete_OnlyFromList(t *testing.T) {
	ctx := context.Background()
	r, _ := newRouter(t)

	err := r.Delete(ctx, "phone-1", "0000")
	require.Error(t, err)
	assert.Equal(t, StateList, r.State())
	assert.Len(t, r.Visible(), 2)

	require.NoError(t, r.Delete(ctx, "phone-1", "1234"))
	assert.Equal(t, StateList, r.State())
	assert.Len(t, r.Visible(), 1)

	require.NoError(t, r.StartAdd())
	assert.ErrorIs(t, r.Delete(ctx, "phone-2", "1234"), ErrInvalidTransition)
}

func TestStringers_OutOfRange(t *testing.T) {
	assert.Equal(t, "saved", EventSaved.String())
	assert.Equal(t, "Event(7)", Event(7).String())
	assert.Equal(t, "State(9)", State(9).String())
}
