package session

import (
	"context"
	"testing"
	"time"

	"usdt-exchange-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	err := store.Put(ctx, &Session{
		ChatID:    42,
		State:     StateAwaitAmount,
		Direction: types.DirectionBuy,
	})
	require.NoError(t, err)

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, StateAwaitAmount, sess.State)
	assert.Equal(t, types.DirectionBuy, sess.Direction)
	assert.False(t, sess.UpdatedAt.IsZero())
}

func TestMemoryStoreGetMissingReturnsNil(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ChatID: 42, State: StateAwaitContact}))
	require.NoError(t, store.Delete(ctx, 42))

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// удаление несуществующей сессии не ошибка
	assert.NoError(t, store.Delete(ctx, 42))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ChatID: 42, State: StateAwaitAmount}))

	first, err := store.Get(ctx, 42)
	require.NoError(t, err)

	// мутация полученной копии не трогает хранилище
	first.State = StateIdle

	second, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitAmount, second.State)
}

func TestMemoryStoreExpiredSessionNotReturned(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	require.NoError(t, store.Put(ctx, &Session{ChatID: 42, State: StateAwaitAmount}))

	store.now = func() time.Time { return base.Add(2 * time.Hour) }

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStoreSweepRemovesIdleSessions(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	require.NoError(t, store.Put(ctx, &Session{ChatID: 1, State: StateAwaitAmount}))

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	require.NoError(t, store.Put(ctx, &Session{ChatID: 2, State: StateAwaitContact}))

	store.now = func() time.Time { return base.Add(90 * time.Minute) }
	store.sweep()

	assert.NotContains(t, store.sessions, int64(1))
	assert.Contains(t, store.sessions, int64(2))
}

func TestMemoryStoreJanitorStartStop(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	store.StartJanitor(10 * time.Millisecond)
	// повторный запуск не плодит горутины
	store.StartJanitor(10 * time.Millisecond)

	store.Stop()
	// повторная остановка безопасна
	store.Stop()
}
