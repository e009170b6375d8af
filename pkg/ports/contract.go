package ports

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArtifactStoreContract runs a suite of tests to verify that an ArtifactStore
// implementation adheres to the defined interface contract.
func RunArtifactStoreContract(t *testing.T, store ArtifactStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		payload := []byte{0x00, 0x01, 0xfe, 0xff, 'o', 'k'}

		err := store.Put(ctx, key, payload)
		require.NoError(t, err, "Put should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, payload, loaded)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("first")))
		require.NoError(t, store.Put(ctx, key, []byte("second")))

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("doomed")))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound, "Get after Delete should return ErrArtifactNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Delete of a missing key should not return error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, store.Put(ctx, id2, []byte("b")))
		require.NoError(t, store.Put(ctx, id1, []byte("a")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
		assert.IsNonDecreasing(t, keys)
	})
}

// RunLockerContract verifies that a Locker provides mutual exclusion per key
// and honors context cancellation while waiting.
func RunLockerContract(t *testing.T, locker Locker) {
	ctx := context.Background()

	t.Run("Lock and Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract/a", time.Second)
		require.NoError(t, err)
		require.NotNil(t, unlock)
		require.NoError(t, unlock(ctx))

		// Reacquire after release.
		unlock, err = locker.Lock(ctx, "contract/a", time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	})

	t.Run("Independent Keys", func(t *testing.T) {
		unlockA, err := locker.Lock(ctx, "contract/x", time.Second)
		require.NoError(t, err)
		defer func() { _ = unlockA(ctx) }()

		timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		unlockB, err := locker.Lock(timeoutCtx, "contract/y", time.Second)
		require.NoError(t, err, "a different key must not block")
		require.NoError(t, unlockB(ctx))
	})

	t.Run("Contention Honors Context", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract/busy", 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		timeoutCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()

		_, err = locker.Lock(timeoutCtx, "contract/busy", 5*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Mutual Exclusion", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			holders atomic.Int32
			overlap atomic.Bool
		)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, "contract/shared", 5*time.Second)
				if !assert.NoError(t, err) {
					return
				}
				if holders.Add(1) > 1 {
					overlap.Store(true)
				}
				time.Sleep(20 * time.Millisecond)
				holders.Add(-1)
				assert.NoError(t, unlock(ctx))
			}()
		}
		wg.Wait()
		assert.False(t, overlap.Load(), "two holders overlapped")
	})
}
