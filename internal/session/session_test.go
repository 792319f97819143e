package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/storage"
)

func newTestSession(store storage.Store) *Session {
	s := New(store, NewStaffTokens("secret", time.Hour), zerolog.Nop())
	s.Load(context.Background())
	return s
}

func TestSession_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := newTestSession(store)

	_, ok := s.User()
	assert.False(t, ok)

	user := model.User{ID: 5, FirstName: "Mario", LastName: "Rossi", City: "Vinovo"}
	require.NoError(t, s.SetUser(ctx, user))

	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user, got)

	restored := newTestSession(store)
	got, ok = restored.User()
	require.True(t, ok)
	assert.Equal(t, user, got)

	require.NoError(t, s.ClearUser(ctx))
	_, ok = s.User()
	assert.False(t, ok)
	_, err := store.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSession_LoadToleratesCorruption(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		staff string
	}{
		{"malformed json", "{not json", "[]"},
		{"wrong shape", `["a"]`, `"token"`},
		{"invalid user", `{"id":0,"firstName":"Ghost"}`, `{"token":"forged"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(tt.user)))
			require.NoError(t, store.Set(ctx, storage.KeyStaff, []byte(tt.staff)))

			s := newTestSession(store)

			_, ok := s.User()
			assert.False(t, ok)
			assert.False(t, s.IsStaff())
		})
	}
}

func TestSession_Staff(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := newTestSession(store)
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.False(t, s.IsStaff())

	token, exp, err := s.StartStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)
	assert.True(t, s.IsStaff())
	assert.NoError(t, s.VerifyStaff(token))

	other := NewStaffTokens("secret", time.Hour)
	foreign, _, err := other.Issue(now)
	require.NoError(t, err)
	assert.ErrorIs(t, s.VerifyStaff(foreign), ErrInvalidToken)

	now = now.Add(2 * time.Hour)
	assert.False(t, s.IsStaff())
	assert.ErrorIs(t, s.VerifyStaff(token), ErrInvalidToken)

	now = now.Add(-2 * time.Hour)
	require.NoError(t, s.EndStaff(ctx))
	assert.False(t, s.IsStaff())
	assert.ErrorIs(t, s.VerifyStaff(token), ErrInvalidToken)
}

func TestSession_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(storage.NewMemoryStore())

	var states []State
	unsubscribe := s.Subscribe(func(st State) { states = append(states, st) })

	require.NoError(t, s.SetUser(ctx, model.User{ID: 1}))
	require.NoError(t, s.ClearUser(ctx))
	unsubscribe()
	require.NoError(t, s.SetUser(ctx, model.User{ID: 2}))

	require.Len(t, states, 2)
	require.NotNil(t, states[0].User)
	assert.Equal(t, int64(1), states[0].User.ID)
	assert.Nil(t, states[1].User)
}

func TestSession_Reload(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	a := newTestSession(store)
	b := newTestSession(store)

	require.NoError(t, a.SetUser(ctx, model.User{ID: 9}))
	_, ok := b.User()
	assert.False(t, ok)

	b.Reload(ctx)
	got, ok := b.User()
	require.True(t, ok)
	assert.Equal(t, int64(9), got.ID)
}
