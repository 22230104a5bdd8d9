package store

import (
	"context"
	"net/http"
	"testing"

	"smartphones/services/smartphone-cli/internal/client"
	"smartphones/services/smartphone-cli/internal/store/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *mock.API) {
	t.Helper()
	api := mock.New("1234")
	api.Seed(
		client.Smartphone{"nom": "iPhone 12", "marque": "Apple"},
		client.Smartphone{"nom": "Galaxy S21", "marque": "Samsung"},
	)
	return New(api), api
}

func TestRefresh_LoadsCollection(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Phones(), 2)
	assert.NoError(t, s.Err())
	assert.False(t, s.Loading())
}

func TestRefresh_FailureEmptiesCollectionAndRetryReissues(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)
	require.NoError(t, s.Refresh(ctx))
	require.Len(t, s.Phones(), 2)

	api.FailNetwork("list", true)
	err := s.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, mock.ErrNetwork)
	assert.Empty(t, s.Phones())
	assert.ErrorIs(t, s.Err(), mock.ErrNetwork)

	api.FailNetwork("list", false)
	before := api.Calls("list")
	require.NoError(t, s.Retry(ctx))
	assert.Equal(t, before+1, api.Calls("list"))
	assert.NoError(t, s.Err())
	assert.Len(t, s.Phones(), 2)
}

func TestAdd_RefetchesAfterCreate(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)

	require.NoError(t, s.Add(ctx, client.Smartphone{"nom": "Pixel 8", "marque": "Google"}))
	assert.Equal(t, 1, api.Calls("list"))
	assert.Len(t, s.Phones(), 3)
}

func TestAdd_FailureSetsErrorWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)
	api.FailNetwork("create", true)

	err := s.Add(ctx, client.Smartphone{"nom": "Pixel 8"})
	require.Error(t, err)
	assert.Equal(t, err, s.Err())
	assert.Zero(t, api.Calls("list"))
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)
	require.NoError(t, s.Refresh(ctx))

	phone := s.Phones()[0]
	phone["nom"] = "iPhone 12 Pro"
	require.NoError(t, s.Save(ctx, phone))
	assert.Equal(t, "iPhone 12 Pro", s.Phones()[0].Nom())
	assert.Equal(t, 2, api.Calls("list"))

	assert.ErrorIs(t, s.Save(ctx, client.Smartphone{"nom": "x"}), ErrMissingID)

	err := s.Save(ctx, client.Smartphone{"id": "ghost"})
	assert.True(t, client.IsNotFound(err))
	assert.Error(t, s.Err())
}

func TestRemove_WrongCodeLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)
	require.NoError(t, s.Refresh(ctx))
	id := s.Phones()[0].ID()

	err := s.Remove(ctx, id, "0000")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid delete code", apiErr.Message)

	assert.NoError(t, s.Err())
	assert.Len(t, s.Phones(), 2)
	assert.Equal(t, 1, api.Calls("list"))
}

func TestRemove_CorrectCodeRefetches(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.Refresh(ctx))
	id := s.Phones()[0].ID()

	require.NoError(t, s.Remove(ctx, id, "1234"))
	require.Len(t, s.Phones(), 1)
	assert.NotEqual(t, id, s.Phones()[0].ID())
}

func TestRemove_NetworkFailureSetsError(t *testing.T) {
	ctx := context.Background()
	s, api := newStore(t)
	api.FailNetwork("delete", true)

	err := s.Remove(ctx, "phone-1", "1234")
	require.Error(t, err)
	assert.ErrorIs(t, s.Err(), mock.ErrNetwork)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	phone, err := s.Fetch(ctx, "phone-2")
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S21", phone.Nom())

	_, err = s.Fetch(ctx, "phone-99")
	assert.True(t, client.IsNotFound(err))
	assert.Error(t, s.Err())
}

func TestPhones_ReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Refresh(context.Background()))

	phones := s.Phones()
	phones[0] = nil
	assert.NotNil(t, s.Phones()[0])
}
