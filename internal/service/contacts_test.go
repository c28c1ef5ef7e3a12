package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/agenda/internal/database/repository"
	"github.com/jask/agenda/internal/logging"
)

// failingStore returns err from every call and counts attempts.
type failingStore struct {
	err   error
	calls int
}

func (f *failingStore) FindAll(context.Context) ([]repository.Contact, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) Create(context.Context, repository.Contact) (repository.Contact, error) {
	f.calls++
	return repository.Contact{}, f.err
}

func (f *failingStore) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

func TestControllerCreateValidatesBeforeStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    NewContact
		field string
	}{
		{"blank name", NewContact{Name: "  ", Phone: "111", Email: "a@x.com"}, "name"},
		{"blank phone", NewContact{Name: "Ana", Phone: "", Email: "a@x.com"}, "phone"},
		{"blank email", NewContact{Name: "Ana", Phone: "111", Email: "\t"}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &failingStore{err: errors.New("must not be called")}
			ctrl := NewContactController(store, logging.Discard())

			_, err := ctrl.Create(ctx, tc.in)
			require.ErrorIs(t, err, ErrBlankField)
			require.ErrorContains(t, err, tc.field)
			require.Zero(t, store.calls)
		})
	}
}

func TestControllerCreateAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := repository.NewMemoryContactRepo()
	ctrl := NewContactController(store, logging.Discard())

	saved, err := ctrl.Create(ctx, NewContact{Name: " Ana ", Phone: "111 ", Email: " a@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "Ana", saved.Name)
	require.Equal(t, "111", saved.Phone)
	require.Equal(t, "a@x.com", saved.Email)

	list, err := ctrl.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.ErrorIs(t, ctrl.Delete(ctx, "  "), ErrBlankID)
	require.NoError(t, ctrl.Delete(ctx, "missing"))
	require.NoError(t, ctrl.Delete(ctx, saved.ID))

	list, err = ctrl.FindAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestControllerWrapsStoreErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("disk full")
	ctrl := NewContactController(&failingStore{err: boom}, logging.Discard())

	_, err := ctrl.FindAll(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "list contacts")

	_, err = ctrl.Create(ctx, NewContact{Name: "Ana", Phone: "1", Email: "a@x.com"})
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "create contact")

	err = ctrl.Delete(ctx, "1")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "delete contact")
}

func TestControllerFindSimilar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := repository.NewMemoryContactRepo(
		repository.Contact{ID: "1", Name: "Ana Torres", Phone: "111", Email: "a@x.com"},
		repository.Contact{ID: "2", Name: "Bruno Diaz", Phone: "222", Email: "b@x.com"},
	)
	ctrl := NewContactController(store, logging.Discard())

	got, err := ctrl.FindSimilar(ctx, "ana torrez", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "1", got.ID)

	got, err = ctrl.FindSimilar(ctx, "Ana Torres", "1")
	require.NoError(t, err)
	require.Nil(t, got, "the excluded contact is never reported")

	got, err = ctrl.FindSimilar(ctx, "Zoe", "")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ctrl.FindSimilar(ctx, "  ", "")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNameDistance(t *testing.T) {
	t.Parallel()

	require.Zero(t, nameDistance("", ""))
	require.Zero(t, nameDistance("ana", "ana"))
	require.InDelta(t, 1.0/3.0, nameDistance("ana", "ann"), 1e-9)
	require.InDelta(t, 1.0, nameDistance("abc", "xyz"), 1e-9)
}
